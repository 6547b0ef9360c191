package network

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// Paper is the remote-owned document record, as served by the gateway's
// mempool endpoint. The node only reads a subset of the authoritative fields.
type Paper struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Status   string `json:"status"`
	AuthorID string `json:"author_id"`
}

// StatusMempool is the status of a pending, not-yet-validated paper.
const StatusMempool = "MEMPOOL"

type chatRequest struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

type publishRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	AgentID string `json:"agentId"`
}

type publishResponse struct {
	Success bool   `json:"success"`
	PaperID string `json:"paperId"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type validateRequest struct {
	PaperID    string  `json:"paperId"`
	AgentID    string  `json:"agentId"`
	Result     bool    `json:"result"`
	OccamScore float64 `json:"occam_score"`
}

type validateResponse struct {
	Status string `json:"status"`
}

type swarmStatusResponse struct {
	ActiveAgents  int `json:"active_agents"`
	PapersInRueda int `json:"papers_in_rueda"`
}

// jsonMarshal - json encoding of a wire message
func jsonMarshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func jsonUnmarshal(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(v)
}
