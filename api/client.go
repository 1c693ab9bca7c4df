package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"swipedeck/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the remote matching backend. It is stateless: one HTTP
// round trip per operation, no retries; recovery is driven by whichever
// trigger caused the call to happen again.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient builds a Client against baseURL.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// FetchIdentity loads the current user's own profile and preferences.
func (c *Client) FetchIdentity(ctx context.Context, userID string) (*models.Identity, error) {
	var identity models.Identity
	err := c.get(ctx, "/user", url.Values{"userId": {userID}}, &identity)
	if err != nil {
		return nil, err
	}
	if identity.UserID == "" {
		return nil, models.ErrUnauthorized
	}
	return &identity, nil
}

// FetchCandidates loads the raw preference-filtered candidate pool.
func (c *Client) FetchCandidates(ctx context.Context, userID, genderInterest string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	params := url.Values{"userId": {userID}, "gender": {genderInterest}}
	if err := c.get(ctx, "/gendered-users", params, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// FetchLikes loads the users who liked userID and are not yet mutual.
func (c *Client) FetchLikes(ctx context.Context, userID string) ([]models.EngagementEntry, error) {
	var likes []models.EngagementEntry
	if err := c.get(ctx, "/likes", url.Values{"userId": {userID}}, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// FetchMatches loads userID's mutual matches.
func (c *Client) FetchMatches(ctx context.Context, userID string) ([]models.EngagementEntry, error) {
	var matches []models.EngagementEntry
	if err := c.get(ctx, "/matches", url.Values{"userId": {userID}}, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// FetchChatHistory loads the full ordered message history between two users.
func (c *Client) FetchChatHistory(ctx context.Context, senderID, recipientID string) ([]models.Message, error) {
	var messages []models.Message
	params := url.Values{"senderId": {senderID}, "recipientId": {recipientID}}
	if err := c.get(ctx, "/messages", params, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

type decisionRequest struct {
	UserID      string `json:"userId"`
	CandidateID string `json:"candidateId"`
	Action      string `json:"action"`
}

type decisionResponse struct {
	Matched bool `json:"matched"`
}

// SubmitDecision submits an accept/reject decision and interprets the
// server's answer as a SwipeOutcome. Rate-limit and malformed-body answers
// are outcomes, not transport errors; only auth and network failures come
// back as err.
func (c *Client) SubmitDecision(ctx context.Context, userID, candidateID, action string) (models.SwipeOutcome, error) {
	body := decisionRequest{UserID: userID, CandidateID: candidateID, Action: action}

	resp, err := c.put(ctx, "/decision", body)
	if err != nil {
		return models.SwipeOutcome{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return models.SwipeOutcome{Kind: models.OutcomeRateLimited}, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return models.SwipeOutcome{}, models.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return models.SwipeOutcome{}, &models.FetchError{Op: "decision", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var decided decisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decided); err != nil {
		c.log.Warn("malformed decision response", zap.Error(err))
		return models.SwipeOutcome{
			Kind:    models.OutcomeStructuralError,
			Message: "malformed decision response",
		}, nil
	}

	if action == models.ActionAccept {
		return models.SwipeOutcome{Kind: models.OutcomeAccepted, Matched: decided.Matched}, nil
	}
	return models.SwipeOutcome{Kind: models.OutcomeRejected}, nil
}

type unmatchRequest struct {
	UserID    string `json:"userId"`
	MatchedID string `json:"matchedId"`
}

// SubmitUnmatch severs a mutual match on the server.
func (c *Client) SubmitUnmatch(ctx context.Context, userID, matchedID string) error {
	resp, err := c.put(ctx, "/unmatch", unmatchRequest{UserID: userID, MatchedID: matchedID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return models.ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return models.ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &models.FetchError{Op: "unmatch", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &models.FetchError{Op: path, Err: err}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.FetchError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return models.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		return &models.FetchError{Op: path, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.StructuralError{Message: fmt.Sprintf("malformed response from %s", path)}
	}
	return nil
}

func (c *Client) put(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &models.FetchError{Op: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &models.FetchError{Op: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.FetchError{Op: path, Err: err}
	}
	return resp, nil
}
