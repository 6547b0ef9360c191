package network

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Per-operation timeouts. The gateway is slow to accept papers, so the
// publish timeout is much longer than the others.
const (
	chatTimeout     = 10 * time.Second
	publishTimeout  = 45 * time.Second
	mempoolTimeout  = 15 * time.Second
	validateTimeout = 15 * time.Second
	statusTimeout   = 10 * time.Second
)

// maxChatLen is the gateway's chat message limit.
const maxChatLen = 280

// StatusUnknown is the sentinel acknowledgement returned when a validation
// vote could not be confirmed by the gateway.
const StatusUnknown = "unknown"

// CurrentFunc returns the currently active gateway URL. It is supplied by the
// gateway Resolver.
type CurrentFunc func() string

// Client wraps the four network operations the node needs. Every operation is
// failure-contained: transport errors, non-2xx responses, and malformed
// payloads are logged and degraded to a missing result for this tick. No
// operation retries; retry is the scheduler's responsibility via the next
// cycle.
type Client struct {
	gateway CurrentFunc
	logger  *logrus.Entry

	chatClient     *http.Client
	publishClient  *http.Client
	mempoolClient  *http.Client
	validateClient *http.Client
	statusClient   *http.Client
}

// NewClient creates a Client that sends its requests to whatever gateway the
// CurrentFunc designates at call time.
func NewClient(gateway CurrentFunc, logger *logrus.Entry) *Client {
	return &Client{
		gateway:        gateway,
		logger:         logger.WithField("component", "network"),
		chatClient:     &http.Client{Timeout: chatTimeout},
		publishClient:  &http.Client{Timeout: publishTimeout},
		mempoolClient:  &http.Client{Timeout: mempoolTimeout},
		validateClient: &http.Client{Timeout: validateTimeout},
		statusClient:   &http.Client{Timeout: statusTimeout},
	}
}

// PostChat posts a best-effort chat or presence message for a persona. The
// message is truncated to the gateway's 280-character limit. Failures are
// logged and swallowed.
func (c *Client) PostChat(sender, message string) bool {
	message = truncate(message, maxChatLen)

	body, err := jsonMarshal(chatRequest{Message: message, Sender: sender})
	if err != nil {
		c.logger.WithField("sender", sender).WithError(err).Error("CHAT_ERR")
		return false
	}

	resp, err := c.chatClient.Post(c.gateway()+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.WithField("sender", sender).WithError(err).Warn("CHAT_ERR")
		return false
	}
	defer resp.Body.Close()

	if !ok2xx(resp) {
		c.logger.WithFields(logrus.Fields{
			"sender": sender,
			"status": resp.StatusCode,
		}).Warn("CHAT_ERR")
		return false
	}

	c.logger.WithFields(logrus.Fields{
		"sender":  sender,
		"message": truncate(message, 70),
	}).Info("CHAT")

	return true
}

// PublishPaper posts a new paper and returns the gateway-assigned id. On a
// business-level rejection, the server's stated reason is logged and an empty
// id is returned.
func (c *Client) PublishPaper(agentID, author, title, content string) (string, bool) {
	body, err := jsonMarshal(publishRequest{
		Title:   title,
		Content: content,
		Author:  author,
		AgentID: agentID,
	})
	if err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Error("PUBLISH_ERR")
		return "", false
	}

	resp, err := c.publishClient.Post(c.gateway()+"/publish-paper", "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Warn("PUBLISH_ERR")
		return "", false
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Warn("PUBLISH_ERR")
		return "", false
	}

	var pub publishResponse
	if err := jsonUnmarshal(raw, &pub); err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Warn("PUBLISH_ERR")
		return "", false
	}

	if !pub.Success {
		reason := pub.Error
		if reason == "" {
			reason = pub.Message
		}
		c.logger.WithFields(logrus.Fields{
			"agent":  agentID,
			"reason": truncate(reason, 80),
		}).Warn("PUBLISH_FAIL")
		return "", false
	}

	c.logger.WithFields(logrus.Fields{
		"agent": agentID,
		"title": truncate(title, 55),
		"paper": pub.PaperID,
	}).Info("PUBLISHED")

	return pub.PaperID, true
}

// ListPending fetches the pending-paper queue, bounded by limit. Any failure
// yields an empty slice; there is simply nothing to validate this tick.
func (c *Client) ListPending(limit int) []*Paper {
	resp, err := c.mempoolClient.Get(fmt.Sprintf("%s/mempool?limit=%d", c.gateway(), limit))
	if err != nil {
		c.logger.WithError(err).Warn("MEMPOOL_ERR")
		return nil
	}
	defer resp.Body.Close()

	if !ok2xx(resp) {
		c.logger.WithField("status", resp.StatusCode).Warn("MEMPOOL_ERR")
		return nil
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Warn("MEMPOOL_ERR")
		return nil
	}

	var papers []*Paper
	if err := jsonUnmarshal(raw, &papers); err != nil {
		c.logger.WithError(err).Warn("MEMPOOL_ERR")
		return nil
	}

	return papers
}

// SubmitValidation posts a validation vote and returns the server's
// acknowledgement status, or the "unknown" sentinel on any failure.
func (c *Client) SubmitValidation(agentID, paperID string, result bool, occamScore float64) string {
	body, err := jsonMarshal(validateRequest{
		PaperID:    paperID,
		AgentID:    agentID,
		Result:     result,
		OccamScore: occamScore,
	})
	if err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Error("VALIDATE_ERR")
		return StatusUnknown
	}

	resp, err := c.validateClient.Post(c.gateway()+"/validate-paper", "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Warn("VALIDATE_ERR")
		return StatusUnknown
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithField("agent", agentID).WithError(err).Warn("VALIDATE_ERR")
		return StatusUnknown
	}

	var val validateResponse
	if err := jsonUnmarshal(raw, &val); err != nil || val.Status == "" {
		return StatusUnknown
	}

	verdict := "REJECT"
	if result {
		verdict = "APPROVE"
	}
	c.logger.WithFields(logrus.Fields{
		"agent":   agentID,
		"paper":   paperID,
		"verdict": verdict,
		"score":   fmt.Sprintf("%.0f%%", occamScore*100),
		"status":  val.Status,
	}).Info("VALIDATED")

	return val.Status
}

// SwarmStatus reads the network-wide agent and paper counters used to fill
// message templates. The boolean is false when the gateway could not be
// reached or returned garbage.
func (c *Client) SwarmStatus() (agents int, papers int, ok bool) {
	resp, err := c.statusClient.Get(c.gateway() + "/swarm-status")
	if err != nil {
		return 0, 0, false
	}
	defer resp.Body.Close()

	if !ok2xx(resp) {
		return 0, 0, false
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, false
	}

	var status swarmStatusResponse
	if err := jsonUnmarshal(raw, &status); err != nil {
		return 0, 0, false
	}

	return status.ActiveAgents, status.PapersInRueda, true
}

func ok2xx(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// truncate caps s at n runes. Cutting on a rune boundary keeps truncated
// messages valid UTF-8.
func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
