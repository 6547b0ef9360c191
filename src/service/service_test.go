package service

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/p2pclaw/citizen/src/common"
	"github.com/p2pclaw/citizen/src/config"
	"github.com/p2pclaw/citizen/src/gateway"
	"github.com/p2pclaw/citizen/src/network"
	"github.com/p2pclaw/citizen/src/node"
	"github.com/p2pclaw/citizen/src/roster"
	"github.com/p2pclaw/citizen/src/writer"
)

//testService builds a Service around a real node wired to nothing. The
//handlers only read node state, so no gateway is needed. The Service is built
//as a literal to avoid re-registering handlers on the DefaultServeMux across
//tests.
func testService(t *testing.T) *Service {
	conf := config.NewDefaultConfig()
	conf.SetLogger(common.NewTestLogger(t))
	conf.NodeID = "svc-test-node"

	personas := []*roster.Persona{
		{
			ID:             "svc-validator",
			Name:           "Dr. Service Test",
			Role:           "Validator",
			Specialization: "Formal Verification",
			Archetype:      "validator",
		},
	}

	ros, err := roster.NewRoster(personas)
	if err != nil {
		t.Fatal(err)
	}

	logger := conf.Logger()
	res := gateway.NewResolver([]string{"http://127.0.0.1:1"}, conf.HealthTimeout, logger)
	client := network.NewClient(res.Current, logger)
	w := writer.NewWriter(conf.NodeID,
		writer.NewGenerator("", logger),
		rand.New(rand.NewSource(1)),
		logger)

	n := node.NewNode(conf, ros, res, client, w, rand.New(rand.NewSource(1)))

	return &Service{
		bindAddress: conf.ServiceAddr,
		node:        n,
		logger:      logger,
	}
}

func TestGetStats(t *testing.T) {
	s := testService(t)

	rec := httptest.NewRecorder()
	s.makeHandler(s.GetStats)(rec, httptest.NewRequest("GET", "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("expected CORS header, got %q", origin)
	}

	var stats map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats["node_id"] != "svc-test-node" {
		t.Fatalf("stats should carry the node id, got %q", stats["node_id"])
	}
	if stats["personas"] != "1" {
		t.Fatalf("stats should carry the roster size, got %q", stats["personas"])
	}
}

func TestGetRoster(t *testing.T) {
	s := testService(t)

	rec := httptest.NewRecorder()
	s.makeHandler(s.GetRoster)(rec, httptest.NewRequest("GET", "/roster", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var personas []*roster.Persona
	if err := json.NewDecoder(rec.Body).Decode(&personas); err != nil {
		t.Fatal(err)
	}
	if len(personas) != 1 || personas[0].ID != "svc-validator" {
		t.Fatalf("unexpected roster payload: %+v", personas)
	}
}

func TestGetGateway(t *testing.T) {
	s := testService(t)

	rec := httptest.NewRecorder()
	s.makeHandler(s.GetGateway)(rec, httptest.NewRequest("GET", "/gateway", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state gateway.State
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	if state.Active != "http://127.0.0.1:1" {
		t.Fatalf("gateway state should carry the active URL, got %q", state.Active)
	}
	if len(state.Candidates) != 1 {
		t.Fatalf("gateway state should carry the candidates, got %v", state.Candidates)
	}
}
