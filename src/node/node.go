package node

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/p2pclaw/citizen/src/config"
	"github.com/p2pclaw/citizen/src/gateway"
	"github.com/p2pclaw/citizen/src/network"
	"github.com/p2pclaw/citizen/src/roster"
	"github.com/p2pclaw/citizen/src/score"
	"github.com/p2pclaw/citizen/src/writer"
	"github.com/sirupsen/logrus"
)

// statsTTL is how long the cached swarm counters remain fresh.
const statsTTL = 5 * time.Minute

//Node drives a roster of personas against the gateway for the configured run
//duration. It is single-threaded: one persona action at a time, in fixed
//roster order, with deliberate pacing delays between actions.
type Node struct {
	state

	conf   *config.Config
	logger *logrus.Entry

	roster   *roster.Roster
	resolver *gateway.Resolver
	client   *network.Client
	writer   *writer.Writer
	rand     *rand.Rand

	sigintCh   chan os.Signal
	shutdownCh chan struct{}

	// overridable in tests to run in virtual time
	now func() time.Time

	start time.Time
	end   time.Time

	// seen holds the ids of papers this run has already voted on. It only
	// grows; at-most-once validation per node per paper.
	seen map[string]bool

	papersPublished int
	validationsDone int
	chatsPosted     int
	cycles          int

	lastBeatSlot    int
	lastResolveHour int

	stats        writer.Stats
	statsRefresh time.Time
}

//NewNode is a factory method that returns a Node instance
func NewNode(conf *config.Config,
	personas *roster.Roster,
	resolver *gateway.Resolver,
	client *network.Client,
	w *writer.Writer,
	r *rand.Rand,
) *Node {
	//Prepare sigintCh to relay SIGINT/SIGTERM system calls
	sigintCh := make(chan os.Signal, 1)
	signal.Notify(sigintCh, syscall.SIGINT, syscall.SIGTERM)

	node := Node{
		conf:            conf,
		logger:          conf.Logger().WithField("node_id", conf.NodeID),
		roster:          personas,
		resolver:        resolver,
		client:          client,
		writer:          w,
		rand:            r,
		sigintCh:        sigintCh,
		shutdownCh:      make(chan struct{}),
		now:             time.Now,
		seen:            make(map[string]bool),
		lastBeatSlot:    -1,
		lastResolveHour: 0,
	}

	return &node
}

//Run invokes the main loop of the node. It resolves the gateway, announces
//the beacon persona, then repeats roster cycles until the run clock expires
//or a cancellation signal arrives.
func (n *Node) Run() {
	n.start = n.now()
	n.end = n.start.Add(time.Duration(n.conf.RunHours * float64(time.Hour)))

	n.logger.WithFields(logrus.Fields{
		"personas":  n.roster.Len(),
		"gateway":   n.resolver.Resolve(),
		"run_hours": n.conf.RunHours,
	}).Info("RUN")

	beacon := n.roster.Beacon()
	if n.client.PostChat(beacon.ID, n.writer.Online(beacon)) {
		n.chatsPosted++
	}

	for n.getState() == Running {
		if n.cancelled() || !n.now().Before(n.end) {
			n.setState(Terminating)
			break
		}

		n.cycle()

		n.logStatus()

		n.maybeResolveGateway()

		n.pause(n.conf.CycleDelay)
	}

	n.shutdown()
}

//Shutdown makes the node leave its Running state cleanly. It is safe to call
//from another goroutine.
func (n *Node) Shutdown() {
	if n.getState() != Terminating {
		n.setState(Terminating)
		close(n.shutdownCh)
	}
}

// cycle iterates the roster once, applying each persona's archetype policy.
// Cancellation is checked between persona actions so a SIGINT does not have
// to wait for a full pass.
func (n *Node) cycle() {
	n.cycles++

	for i, p := range n.roster.Personas {
		if n.cancelled() {
			n.setState(Terminating)
		}
		// a pause interrupted by a signal leaves the node Terminating; the
		// in-flight cycle stops here rather than finishing the pass
		if n.getState() != Running {
			return
		}

		if i == 0 {
			n.heartbeat(p)
		}

		switch {
		case p.Archetype.Publishes():
			n.publish(p)
		case p.Archetype.Validates():
			n.validate(p)
		case p.Archetype.Social():
			n.engage(p)
		}

		n.pause(n.conf.AgentDelay)
	}
}

// heartbeat emits the beacon presence message when the 5-minute elapsed-time
// slot changes. The slot is derived from elapsed time, not cycle count, so
// heartbeat frequency is independent of cycle duration.
func (n *Node) heartbeat(p *roster.Persona) {
	slot := int(n.elapsedHours() * 12)
	if slot == n.lastBeatSlot {
		return
	}
	n.lastBeatSlot = slot

	if n.client.PostChat(p.ID, n.writer.Heartbeat(p)) {
		n.chatsPosted++
	}
}

// publish applies the publishing policy: unconditional while the bootstrap
// quota is unfilled, then a small per-cycle probability.
func (n *Node) publish(p *roster.Persona) {
	if n.papersPublished >= n.conf.PublishQuota && n.rand.Float64() >= n.conf.PublishProb {
		return
	}

	title, content := n.writer.Paper(p, n.now())

	if _, ok := n.client.PublishPaper(p.ID, p.Name, title, content); !ok {
		return
	}
	n.papersPublished++

	if n.client.PostChat(p.ID, n.writer.Submitted(title)) {
		n.chatsPosted++
	}
}

// validate applies the validating policy: with probability ValidateProb,
// fetch pending papers, score each unseen one not authored by this persona,
// and submit the verdict. Papers are marked seen before scoring so no paper
// is ever voted on twice by this node.
func (n *Node) validate(p *roster.Persona) {
	if n.rand.Float64() >= n.conf.ValidateProb {
		return
	}

	papers := n.client.ListPending(n.conf.MempoolLimit)
	n.stats.Mempool = len(papers)

	count := 0
	for _, paper := range papers {
		if count == n.conf.ValidateBatch {
			break
		}
		if paper.Status != network.StatusMempool || n.seen[paper.ID] || paper.AuthorID == p.ID {
			continue
		}

		n.seen[paper.ID] = true
		count++

		result := score.Occam(paper.Content)

		n.pause(n.conf.ValidateDelay)
		if n.cancelled() {
			n.setState(Terminating)
		}
		if n.getState() != Running {
			return
		}

		n.client.SubmitValidation(p.ID, paper.ID, result.Valid, result.Score)
		n.validationsDone++
	}
}

// engage applies the social policy: with probability SocialProb, post an
// engagement message built from the node identity and the cached swarm
// counters.
func (n *Node) engage(p *roster.Persona) {
	if n.rand.Float64() >= n.conf.SocialProb {
		return
	}

	if n.client.PostChat(p.ID, n.writer.Message(p, n.swarmStats())) {
		n.chatsPosted++
	}
}

// swarmStats returns the network counters, refreshing the cache when stale.
func (n *Node) swarmStats() writer.Stats {
	if n.now().Sub(n.statsRefresh) < statsTTL {
		return n.stats
	}

	if agents, papers, ok := n.client.SwarmStatus(); ok {
		n.stats.Agents = agents
		n.stats.Papers = papers
	}
	n.statsRefresh = n.now()

	return n.stats
}

// maybeResolveGateway re-resolves the gateway when the elapsed run-time
// crosses a 5-hour boundary, to recover from a mid-run gateway outage.
func (n *Node) maybeResolveGateway() {
	hour := int(n.elapsedHours())
	if hour%5 == 0 && hour != n.lastResolveHour {
		n.lastResolveHour = hour
		n.resolver.Resolve()
	}
}

func (n *Node) elapsedHours() float64 {
	if n.start.IsZero() {
		return 0
	}
	return n.now().Sub(n.start).Hours()
}

// cancelled drains the signal channels without blocking.
func (n *Node) cancelled() bool {
	select {
	case <-n.sigintCh:
		n.logger.Debug("Reacting to SIGINT")
		return true
	case <-n.shutdownCh:
		return true
	default:
		return false
	}
}

// pause sleeps for d, waking early on cancellation.
func (n *Node) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-n.sigintCh:
		n.setState(Terminating)
	case <-n.shutdownCh:
		n.setState(Terminating)
	}
}

func (n *Node) logStatus() {
	n.logger.WithFields(logrus.Fields{
		"elapsed_h":   fmt.Sprintf("%.1f", n.elapsedHours()),
		"remaining_h": fmt.Sprintf("%.1f", n.end.Sub(n.now()).Hours()),
		"papers":      n.papersPublished,
		"validations": n.validationsDone,
		"chats":       n.chatsPosted,
		"cycles":      n.cycles,
	}).Info("STATUS")
}

// shutdown emits the final summary. This is the only exit path.
func (n *Node) shutdown() {
	n.logger.WithFields(logrus.Fields{
		"papers":      n.papersPublished,
		"validations": n.validationsDone,
		"chats":       n.chatsPosted,
		"cycles":      n.cycles,
	}).Info("SHUTDOWN")
}

//GetStats returns stats
func (n *Node) GetStats() map[string]string {
	return map[string]string{
		"node_id":          n.conf.NodeID,
		"state":            n.getState().String(),
		"personas":         strconv.Itoa(n.roster.Len()),
		"papers_published": strconv.Itoa(n.papersPublished),
		"validations_done": strconv.Itoa(n.validationsDone),
		"chats_posted":     strconv.Itoa(n.chatsPosted),
		"cycles":           strconv.Itoa(n.cycles),
		"papers_seen":      strconv.Itoa(len(n.seen)),
		"active_gateway":   n.resolver.Current(),
		"elapsed_hours":    fmt.Sprintf("%.2f", n.elapsedHours()),
	}
}

//GetRoster returns the node's personas
func (n *Node) GetRoster() []*roster.Persona {
	return n.roster.Personas
}

//GetGatewayState returns the gateway candidates and active URL
func (n *Node) GetGatewayState() gateway.State {
	return n.resolver.GetState()
}

//PapersPublished returns the number of papers published this run
func (n *Node) PapersPublished() int {
	return n.papersPublished
}

//ValidationsDone returns the number of validation votes submitted this run
func (n *Node) ValidationsDone() int {
	return n.validationsDone
}
