package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/payoff/internal/calc"
)

// Event types published after a successful mutation.
const (
	EventSnapshot        = "snapshot"
	EventDebtAdded       = "debt_added"
	EventDebtUpdated     = "debt_updated"
	EventDebtDeleted     = "debt_deleted"
	EventPaymentRecorded = "payment_recorded"
	EventDataCleared     = "data_cleared"
	EventAccountUpdated  = "account_updated"
	EventThemeChanged    = "theme_changed"
)

// Event is emitted whenever the ledger or preferences change.
type Event struct {
	ID        int64        `json:"id"`
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Subject   string       `json:"subject,omitempty"` // debt, payment, or theme id
	Summary   calc.Summary `json:"summary"`
}

func (s *Server) publish(typ, subject string, summary calc.Summary) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: s.now().UTC(),
		Subject:   subject,
		Summary:   summary,
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Server) recentEvents() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Server) handleEvents(c *gin.Context) {
	respondJSON(c, s.log, http.StatusOK, gin.H{"events": s.recentEvents()})
}

func (s *Server) handleStream(c *gin.Context) {
	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	current := Event{Type: EventSnapshot, Timestamp: s.now().UTC()}
	if debts, err := s.ledger.LoadDebts(c.Request.Context()); err == nil {
		current.Summary = calc.Summarize(debts)
	} else {
		s.log.Warnw("stream snapshot unavailable", "error", err)
	}
	c.SSEvent(current.Type, current)
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}

func (s *Server) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Server) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
