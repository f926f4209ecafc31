package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
)

// callSummaryResult is the JSON shape requested from the model for a call
type callSummaryResult struct {
	KeyPoints         []string `json:"keyPoints"`
	SymptomsDiscussed []string `json:"symptomsDiscussed"`
	ActionItems       []string `json:"actionItems"`
	OverallSummary    string   `json:"overallSummary"`
}

// Parser handles parsing and validation of Groq API responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseCallSummary parses a call summary reply
func (p *Parser) ParseCallSummary(content string) (*callSummaryResult, error) {
	var result callSummaryResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if strings.TrimSpace(result.OverallSummary) == "" {
		return nil, fmt.Errorf("missing overallSummary in response")
	}
	result.KeyPoints = compact(result.KeyPoints)
	result.SymptomsDiscussed = compact(result.SymptomsDiscussed)
	result.ActionItems = compact(result.ActionItems)
	return &result, nil
}

// ParseSymptomAnalysis parses a symptom analysis reply. An unrecognized
// urgency level is read as low.
func (p *Parser) ParseSymptomAnalysis(content string) (*entities.SymptomAnalysis, error) {
	var raw struct {
		DiagnosisSuggestions []string `json:"diagnosisSuggestions"`
		UrgencyLevel         string   `json:"urgencyLevel"`
		Recommendations      []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if raw.UrgencyLevel == "" {
		return nil, fmt.Errorf("missing urgencyLevel in response")
	}

	return &entities.SymptomAnalysis{
		DiagnosisSuggestions: compact(raw.DiagnosisSuggestions),
		UrgencyLevel:         entities.ParseSeverity(raw.UrgencyLevel),
		Recommendations:      compact(raw.Recommendations),
	}, nil
}

// ParseReminderConfirmation parses a medication reminder reply. The message
// is required since it is read back to the patient.
func (p *Parser) ParseReminderConfirmation(content string) (*entities.ReminderConfirmation, error) {
	var confirmation entities.ReminderConfirmation
	if err := json.Unmarshal([]byte(extractJSON(content)), &confirmation); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	confirmation.Message = strings.TrimSpace(confirmation.Message)
	if confirmation.Message == "" {
		return nil, fmt.Errorf("missing message in response")
	}
	return &confirmation, nil
}

// extractJSON strips a markdown code block around the model output
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

// compact drops blank entries and never returns nil
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
