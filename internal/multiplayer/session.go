// Package multiplayer implements the two-player relay race: a handshake over
// a shared pub/sub topic followed by alternating legs, where each player
// continues climbing from the height at which the other one fell.
package multiplayer

// SessionOptions tunes the handshake.
type SessionOptions struct {
	// RetryEvery is the number of ticks between StartMultiplayer
	// announcements while no partner answered. Zero disables retries and
	// the solo fallback.
	RetryEvery int
	// MaxRetries is how many re-announcements are sent before falling back
	// to solo play.
	MaxRetries int
	// InitialAbility is the ability resource a fresh session starts with.
	InitialAbility float64
}

// Session is the relay race state. It is a plain state machine: every
// method returns the message to publish, if any, and never does I/O. It
// must only be touched from the game loop goroutine.
type Session struct {
	ID                   string
	IsMultiplayer        bool
	AwaitingPartner      bool
	PartnerFound         bool
	SentDead             bool
	InitialScore         int
	InitialAbilityFrames float64

	// PartnerID is set once a partner is known; messages from any other
	// sender are ignored from then on.
	PartnerID string
	// ClaimedFirst is true on the side that answered StartMultiplayer.
	ClaimedFirst bool

	opts      SessionOptions
	retries   int
	sinceSent int
	// settled is set once a hand-over was sent or accepted. The first leg
	// is decided from then on and PartnerFound can no longer force a yield.
	settled bool
	// received is the last accepted hand-over, kept to drop redeliveries.
	received *PartnerDied
	// reported is the score of our last reported death. The partner climbs
	// on from it, so a genuine hand-over never reports less.
	reported int
}

// NewSession creates a solo session with the given id.
func NewSession(id string, opts SessionOptions) *Session {
	return &Session{
		ID:                   id,
		InitialAbilityFrames: opts.InitialAbility,
		opts:                 opts,
	}
}

// Start begins a brand-new multiplayer session and returns the announcement
// to publish.
func (s *Session) Start() Message {
	*s = Session{
		ID:                   s.ID,
		IsMultiplayer:        true,
		AwaitingPartner:      true,
		InitialAbilityFrames: s.opts.InitialAbility,
		opts:                 s.opts,
	}
	return StartMultiplayer{}
}

// Leave drops back to solo play and forgets the partner.
func (s *Session) Leave() {
	*s = Session{
		ID:                   s.ID,
		InitialAbilityFrames: s.opts.InitialAbility,
		opts:                 s.opts,
	}
}

// Handle applies one inbound message. It returns the event for the game loop
// and the reply to publish; either may be nil.
func (s *Session) Handle(env Envelope) (Event, Message) {
	if env.Sender == s.ID || !s.IsMultiplayer {
		return nil, nil
	}
	if s.PartnerID != "" && env.Sender != s.PartnerID {
		return nil, nil
	}

	switch m := env.Body.(type) {
	case StartMultiplayer:
		if s.PartnerFound {
			if !s.ClaimedFirst {
				// A late copy of the partner's announcement. Answering it
				// would read as a rival claim on the other side.
				return nil, nil
			}
			// Our earlier answer may have been lost.
			return nil, PartnerFound{Target: env.Sender}
		}
		if !s.AwaitingPartner {
			return nil, nil
		}
		s.AwaitingPartner = false
		s.PartnerFound = true
		s.PartnerID = env.Sender
		s.ClaimedFirst = true
		return MatchedEvent{PartnerID: env.Sender}, PartnerFound{Target: env.Sender}

	case PartnerFound:
		if m.Target != "" && m.Target != s.ID {
			return nil, nil
		}
		if s.ClaimedFirst {
			// Both sides answered each other. The larger id yields, but
			// only while the first leg is still undecided.
			if s.ID > env.Sender && !s.settled {
				s.ClaimedFirst = false
				s.AwaitingPartner = true
				return YieldEvent{PartnerID: env.Sender}, nil
			}
			return nil, nil
		}
		if s.PartnerFound {
			return nil, nil
		}
		s.PartnerFound = true
		s.PartnerID = env.Sender
		return PartnerFoundEvent{PartnerID: env.Sender}, nil

	case PartnerDied:
		if !s.AwaitingPartner && !s.SentDead {
			// Redelivered while our own leg runs.
			return nil, nil
		}
		if s.received != nil && *s.received == m && env.Sender == s.PartnerID {
			// Redelivered after we already took over from it.
			return nil, nil
		}
		if s.SentDead && m.Score < s.reported {
			// An older leg's hand-over arriving late.
			return nil, nil
		}
		s.received = &m
		s.settled = true
		s.AwaitingPartner = false
		s.InitialScore = m.Score
		s.InitialAbilityFrames = m.Ability
		if s.PartnerID == "" {
			s.PartnerID = env.Sender
			s.PartnerFound = true
		}
		return PartnerDiedEvent{PartnerID: env.Sender, Score: m.Score, Ability: m.Ability}, nil
	}
	return nil, nil
}

// Tick advances the handshake timer by one game tick.
func (s *Session) Tick() (Event, Message) {
	if !s.IsMultiplayer || !s.AwaitingPartner || s.PartnerFound || s.opts.RetryEvery <= 0 {
		return nil, nil
	}
	s.sinceSent++
	if s.sinceSent < s.opts.RetryEvery {
		return nil, nil
	}
	s.sinceSent = 0
	if s.retries >= s.opts.MaxRetries {
		retries := s.retries
		s.Leave()
		return FallbackSoloEvent{Retries: retries}, nil
	}
	s.retries++
	return nil, StartMultiplayer{}
}

// ReportDeath records the local player's death and returns the hand-over to
// publish. It returns nil when solo or when this death was already reported.
func (s *Session) ReportDeath(score int, ability float64) Message {
	if !s.IsMultiplayer || s.SentDead {
		return nil
	}
	s.SentDead = true
	s.AwaitingPartner = true
	s.settled = true
	s.reported = score
	return PartnerDied{Score: score, Ability: ability}
}

// BeginRound re-arms the death report for the next leg.
func (s *Session) BeginRound() {
	s.SentDead = false
}

// Retries returns how many re-announcements were sent so far.
func (s *Session) Retries() int {
	return s.retries
}
