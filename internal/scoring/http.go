package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
)

const (
	assessmentsPath   = "/assessments/"
	idempotencyHeader = "Idempotency-Key"
	maxResponseBytes  = 1 << 20
)

type assessmentRequest struct {
	UserID    string          `json:"user_id"`
	SessionID string          `json:"session_id"`
	Answers   []answerPayload `json:"answers"`
}

type answerPayload struct {
	QuestionID  int `json:"question_id"`
	AnswerValue int `json:"answer_value"`
}

type assessmentResponse struct {
	TotalEPDSScore        int     `json:"total_epds_score"`
	DepressionLevel       string  `json:"depression_level"`
	RecommendationTitle   string  `json:"recommendation_title"`
	RecommendationMessage string  `json:"recommendation_message"`
	EmergencyAdvice       *string `json:"emergency_advice"`
}

// HTTPClient talks to the scoring service over HTTP.
type HTTPClient struct {
	endpoint   string
	apiVersion string
	http       *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewHTTPClient creates a client for the service at cfg.URL.
func NewHTTPClient(cfg Config, logger *zap.Logger) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("scorer url is required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid scorer url %q", cfg.URL)
	}
	if err := validConfigVersion(cfg.APIVersion); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &HTTPClient{
		endpoint:   strings.TrimRight(cfg.URL, "/") + assessmentsPath,
		apiVersion: cfg.APIVersion,
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("scoring.http"),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c, nil
}

// Name returns "http".
func (c *HTTPClient) Name() string { return "http" }

func (c *HTTPClient) Score(ctx context.Context, sub questionnaire.Submission) (*risk.Assessment, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	body, err := json.Marshal(buildRequest(sub))
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sub.ID != "" {
		req.Header.Set(idempotencyHeader, sub.ID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := mapStatus(resp, raw); err != nil {
		return nil, err
	}
	if err := checkAPIVersion(c.apiVersion, resp.Header.Get(APIVersionHeader)); err != nil {
		return nil, err
	}

	a, err := decodeAssessment(raw)
	if err != nil {
		return nil, err
	}

	if total := sub.Total(); a.Score != total {
		c.logger.Warn("service score differs from answer sum",
			zap.String("submission_id", sub.ID),
			zap.Int("service_score", a.Score),
			zap.Int("answer_sum", total),
		)
	}
	return a, nil
}

func buildRequest(sub questionnaire.Submission) assessmentRequest {
	answers := make([]answerPayload, len(sub.Answers))
	for i, a := range sub.Answers {
		answers[i] = answerPayload{QuestionID: a.QuestionID, AnswerValue: a.Value}
	}
	return assessmentRequest{
		UserID:    sub.SubjectID,
		SessionID: sub.SessionID,
		Answers:   answers,
	}
}

// mapStatus turns non-2xx responses into typed errors. Server-side and
// throttling statuses are transport errors; any other status means the
// request itself was rejected.
func mapStatus(resp *http.Response, raw []byte) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return &TransportError{
			StatusCode: code,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        errors.New(http.StatusText(code)),
		}
	default:
		return &ContractError{
			StatusCode: code,
			Reason:     fmt.Sprintf("unexpected status %d", code),
			Body:       raw,
		}
	}
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// decodeAssessment validates raw against the response contract and maps
// it to an Assessment. Unknown labels and out-of-range scores are
// contract errors; nothing is defaulted.
func decodeAssessment(raw []byte) (*risk.Assessment, error) {
	if err := validateResponse(raw); err != nil {
		return nil, err
	}

	var body assessmentResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ContractError{Reason: "malformed JSON", Body: raw, Err: err}
	}

	tier, err := risk.ParseTier(body.DepressionLevel)
	if err != nil {
		return nil, &ContractError{Reason: "unknown tier label", Body: raw, Err: err}
	}

	a := &risk.Assessment{
		Score:   body.TotalEPDSScore,
		Tier:    tier,
		Title:   body.RecommendationTitle,
		Message: body.RecommendationMessage,
		Source:  risk.SourceRemote,
	}
	if body.EmergencyAdvice != nil {
		a.EmergencyAdvice = strings.TrimSpace(*body.EmergencyAdvice)
	}
	if err := a.Validate(); err != nil {
		return nil, &ContractError{Reason: "invalid assessment", Body: raw, Err: err}
	}
	return a, nil
}
