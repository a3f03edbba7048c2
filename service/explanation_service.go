package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"home-budget/domain"
)

type ExplanationService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *retryablehttp.Client
	printer    *message.Printer
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const advisorPrompt = "You are a plain-spoken home buying advisor. Explain affordability estimates " +
	"in at most four sentences, mention the limiting factor and any down payment shortfall, " +
	"and never promise loan approval."

// NewExplanationService calls the chat endpoint when apiKey is set and falls back
// to a deterministic summary otherwise.
func NewExplanationService(apiKey, apiURL, model string, logger *zap.Logger) *ExplanationService {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &ExplanationService{
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
		enabled:    apiKey != "",
		httpClient: client,
		printer:    message.NewPrinter(language.AmericanEnglish),
		logger:     logger.Named("explain"),
	}
}

// Explain describes a computed result in prose.
func (s *ExplanationService) Explain(ctx context.Context, result domain.BudgetResult) string {
	if !s.enabled {
		return s.Summary(result)
	}

	explanation, err := s.callLLM(ctx, s.prompt(result))
	if err != nil {
		s.logger.Warn("explanation request failed, using summary", zap.Error(err))
		return s.Summary(result)
	}
	return explanation
}

// Summary is the deterministic explanation.
func (s *ExplanationService) Summary(result domain.BudgetResult) string {
	a := result.Affordability
	c := result.MonthlyCosts
	d := result.DownPayment

	if a.HomePrice <= 0 {
		return "With these inputs the fixed monthly costs or the missing down payment funds leave no purchase price that fits."
	}

	var b strings.Builder

	b.WriteString(s.printer.Sprintf("You can afford a home priced at about %s in %s. ",
		s.money(a.HomePrice), result.Input.City))

	switch a.LimitingFactor {
	case domain.LimitedByMonthlyPayment:
		b.WriteString(s.printer.Sprintf("The price is limited by your monthly payment capacity of %s per month. ",
			s.money(a.MonthlyBudget)))
	case domain.LimitedByDownPayment:
		b.WriteString(s.printer.Sprintf("The price is limited by the funds available for a down payment, which support at most %s. ",
			s.money(a.ReserveCeiling)))
	}

	b.WriteString(s.printer.Sprintf("Estimated monthly cost is %s", s.money(c.Total)))
	if c.TrustFundCredit > 0 {
		b.WriteString(s.printer.Sprintf(" after a trust fund credit of %s", s.money(c.TrustFundCredit)))
	}
	b.WriteString(". ")

	if d.Shortfall > 0 {
		b.WriteString(s.printer.Sprintf("Your down payment falls short by %s of the %s required.",
			s.money(d.Shortfall), s.money(d.Required)))
	} else {
		b.WriteString(s.printer.Sprintf("Your savings and trust fund cover the %s down payment.", s.money(d.Required)))
	}

	return b.String()
}

func (s *ExplanationService) money(v float64) string {
	return s.printer.Sprintf("$%.2f", roundTo2Decimals(v))
}

func (s *ExplanationService) prompt(result domain.BudgetResult) string {
	r := RoundResult(result)
	return fmt.Sprintf(`Explain this home affordability estimate.

- City: %s
- Annual income: $%.2f
- Savings: $%.2f
- Trust fund: $%.2f
- Interest rate: %.2f%%
- Affordable price: $%.2f (limited by %s)
- Monthly cost: $%.2f (mortgage $%.2f, tax $%.2f, insurance $%.2f, HOA $%.2f, trust credit $%.2f)
- Down payment required: $%.2f, covered: $%.2f, shortfall: $%.2f`,
		r.Input.City,
		r.Input.AnnualIncome,
		r.Input.TotalSavings,
		r.Input.TrustFund(),
		r.Input.InterestRate,
		r.Affordability.HomePrice, r.Affordability.LimitingFactor,
		r.MonthlyCosts.Total, r.MonthlyCosts.Mortgage, r.MonthlyCosts.PropertyTax,
		r.MonthlyCosts.Insurance, r.MonthlyCosts.HOA, r.MonthlyCosts.TrustFundCredit,
		r.DownPayment.Required, r.DownPayment.Total, r.DownPayment.Shortfall,
	)
}

func (s *ExplanationService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: advisorPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 250,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty chat API response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
