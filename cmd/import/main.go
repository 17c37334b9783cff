// Command import bulk-loads case records from a CSV export through the
// HTTP API of a running instance, authenticating as an admin user first.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/subhamroy/case-registry/internal/cases"
	"github.com/subhamroy/case-registry/pkg/logger"
)

func main() {
	var (
		filePath string
		apiBase  string
		username string
		password string
	)
	flag.StringVar(&filePath, "file", "./cases.csv", "Path to the CSV file")
	flag.StringVar(&apiBase, "api", "http://localhost:8080", "Base URL of the API")
	flag.StringVar(&username, "username", "admin", "Admin username")
	flag.StringVar(&password, "password", "", "Admin password")
	flag.Parse()

	log, err := logger.NewLogger("info", "console")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if password == "" {
		log.Fatal("An admin password is required (-password)")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	ensureAdmin(client, log, apiBase, username, password)
	token, err := login(client, apiBase, username, password)
	if err != nil {
		log.Fatal("Could not log in as admin", "error", err)
	}
	log.Info("Login successful", "username", username)

	records, err := readCases(filePath)
	if err != nil {
		log.Fatal("Failed to read CSV", "file", filePath, "error", err)
	}
	log.Info("CSV file processed", "records", len(records))

	created, failed := 0, 0
	for _, record := range records {
		if err := postCase(client, apiBase, token, record); err != nil {
			log.Error("Failed to create case", "case_no", record.CaseNo, "error", err)
			failed++
			continue
		}
		log.Info("Created case", "case_no", record.CaseNo)
		created++
	}
	log.Info("Import finished", "created", created, "failed", failed)
}

// ensureAdmin registers the admin user; an already-existing user is not
// an error.
func ensureAdmin(client *http.Client, log *logger.Logger, apiBase, username, password string) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
		"role":     "Admin",
	})
	resp, err := client.Post(apiBase+"/api/users/register", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatal("Could not reach the API", "error", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		log.Info("Admin user created", "username", username)
	case http.StatusBadRequest:
		log.Info("Admin user already exists", "username", username)
	default:
		log.Fatal("Unexpected response creating admin user", "status", resp.StatusCode)
	}
}

func login(client *http.Client, apiBase, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := client.Post(apiBase+"/api/users/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// readCases parses the CSV into case payloads, skipping rows without a
// case number.
func readCases(path string) ([]*cases.CaseInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []*cases.CaseInput
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		caseNo := field(row, "Case No.")
		if caseNo == "" {
			continue
		}

		petitioner := partyFromName(field(row, "Petitioner"))
		if petitioner != nil {
			if advocate := partyFromName(field(row, "advocate")); advocate != nil {
				petitioner.Advocates = []cases.PartyInput{*advocate}
			}
		}
		respondent := partyFromName(field(row, "Respondent"))

		input := &cases.CaseInput{
			CaseNo:     caseNo,
			FilingDate: parseDate(field(row, "filing_date")),
			Section:    field(row, "section"),
			PSBlock:    field(row, "PS/BLOCK"),
			LandEntries: []cases.LandEntryInput{{
				Mouza:   field(row, "mouza"),
				Khatian: field(row, "khatian"),
				JLNo:    field(row, "jl_no"),
				DagNo:   field(row, "dag_no"),
				Area:    field(row, "area"),
			}},
		}
		if petitioner != nil {
			input.Petitioners = []cases.PartyInput{*petitioner}
		}
		if respondent != nil {
			input.Respondents = []cases.PartyInput{*respondent}
		}
		if next := parseDate(field(row, "next_date")); next != nil {
			input.HearingDates = []cases.HearingDateInput{{HearingDate: next}}
		}
		out = append(out, input)
	}
	return out, nil
}

func postCase(client *http.Client, apiBase, token string, input *cases.CaseInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiBase+"/api/cases", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

// partyFromName splits a full name into first/last. Everything before
// the final space is the first name.
func partyFromName(fullName string) *cases.PartyInput {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil
	}
	parts := strings.Fields(fullName)
	if len(parts) == 1 {
		return &cases.PartyInput{FirstName: parts[0]}
	}
	return &cases.PartyInput{
		FirstName: strings.Join(parts[:len(parts)-1], " "),
		LastName:  parts[len(parts)-1],
	}
}

func parseDate(value string) *cases.Date {
	if value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &cases.Date{Time: t}
		}
	}
	return nil
}
