package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subtrackr/internal/billing"
	"subtrackr/internal/db"
	"subtrackr/internal/models"
)

var csvHeader = []string{"Name", "URL", "Amount", "Currency", "Billing Cycle", "Start Date", "Next Payment Date", "Notes", "Active"}

const csvDateLayout = "2006-01-02"

// ExportCSV streams the user's subscriptions as a CSV attachment.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}

	subs, err := db.GetSubscriptionsByUserID(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get subscriptions")
		return
	}

	filename := fmt.Sprintf("subscriptions_%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	_ = writer.Write(csvHeader)
	for _, sub := range subs {
		nextPayment := ""
		if sub.NextPaymentDate != nil {
			nextPayment = sub.NextPaymentDate.Format(csvDateLayout)
		}
		active := "No"
		if sub.IsActive {
			active = "Yes"
		}
		_ = writer.Write([]string{
			sub.Name,
			sub.URL,
			strconv.FormatFloat(sub.Amount, 'f', -1, 64),
			sub.Currency,
			sub.BillingCycle.String(),
			sub.StartDate.Format(csvDateLayout),
			nextPayment,
			sub.Notes,
			active,
		})
	}
	writer.Flush()
}

// ImportCSV upserts subscriptions from an uploaded CSV, keyed by name. Rows
// that fail to parse are skipped, not fatal.
func (h *Handlers) ImportCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "User not found in context")
		return
	}

	file, header, err := r.FormFile("csv_file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file selected")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".csv") {
		respondError(w, http.StatusBadRequest, "File must be a CSV")
		return
	}

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse CSV")
		return
	}
	if len(records) < 2 {
		respondError(w, http.StatusBadRequest, "CSV has no data rows")
		return
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["Name"]; !ok {
		respondError(w, http.StatusBadRequest, "CSV is missing a Name column")
		return
	}

	imported, skipped := 0, 0
	now := time.Now().UTC()
	for _, record := range records[1:] {
		if err := importRow(user.ID, record, columns, now); err != nil {
			log.Printf("Skipping CSV row for user %d: %v", user.ID, err)
			skipped++
			continue
		}
		imported++
	}

	respondJSON(w, http.StatusOK, map[string]int{"imported": imported, "skipped": skipped})
}

func importRow(userID int64, record []string, columns map[string]int, now time.Time) error {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("Name")
	if name == "" {
		return fmt.Errorf("missing name")
	}

	amount := 0.0
	if raw := field("Amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", raw)
		}
		amount = parsed
	}

	currencyCode := field("Currency")
	if currencyCode == "" {
		currencyCode = "USD"
	}

	rawCycle := field("Billing Cycle")
	if rawCycle == "" {
		rawCycle = string(billing.CycleMonthly)
	}
	cycle, err := billing.ParseCycle(rawCycle)
	if err != nil {
		return err
	}

	startDate := now
	if raw := field("Start Date"); raw != "" {
		parsed, err := time.Parse(csvDateLayout, raw)
		if err == nil {
			startDate = parsed
		}
	}

	sub := &models.Subscription{
		UserID:       userID,
		Name:         name,
		URL:          field("URL"),
		Amount:       amount,
		Currency:     currencyCode,
		BillingCycle: cycle,
		StartDate:    startDate,
		Notes:        field("Notes"),
		IsActive:     field("Active") != "No",
	}
	sub.NextPaymentDate = billing.NextPaymentDate(sub.StartDate, sub.BillingCycle, nil, now)

	if existing, err := db.GetSubscriptionByName(userID, name); err == nil {
		sub.ID = existing.ID
		return db.UpdateSubscription(sub)
	}

	created, err := db.CreateSubscription(sub)
	if err != nil {
		return err
	}
	createDefaultReminders(created)
	return nil
}
