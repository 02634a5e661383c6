package multiplayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Wire kinds.
const (
	KindStartMultiplayer = "start_multiplayer"
	KindPartnerFound     = "partner_found"
	KindPartnerDied      = "partner_died"
)

var (
	// ErrMalformed is returned for payloads with a bad field count or value.
	ErrMalformed = errors.New("malformed message")
	// ErrUnknownKind is returned for payloads with an unrecognised kind.
	ErrUnknownKind = errors.New("unknown message kind")
)

// Message is one protocol message body.
type Message interface {
	Kind() string
	fields() []string
}

// StartMultiplayer announces that the sender wants a relay partner.
type StartMultiplayer struct{}

// Kind implements Message.
func (StartMultiplayer) Kind() string { return KindStartMultiplayer }

func (StartMultiplayer) fields() []string { return nil }

// PartnerFound answers a StartMultiplayer. Target names the session being
// answered; it is empty when sent by peers that do not address replies.
type PartnerFound struct {
	Target string
}

// Kind implements Message.
func (PartnerFound) Kind() string { return KindPartnerFound }

func (m PartnerFound) fields() []string {
	if m.Target == "" {
		return nil
	}
	return []string{m.Target}
}

// PartnerDied hands the relay over: the receiver continues from Score with
// Ability frames left.
type PartnerDied struct {
	Score   int
	Ability float64
}

// Kind implements Message.
func (PartnerDied) Kind() string { return KindPartnerDied }

func (m PartnerDied) fields() []string {
	return []string{
		strconv.Itoa(m.Score),
		strconv.FormatFloat(m.Ability, 'f', -1, 64),
	}
}

// Envelope is a decoded message together with its sender.
type Envelope struct {
	Sender string
	Body   Message
}

// Encode renders a message as "sender,kind[,fields...]".
func Encode(sender string, m Message) []byte {
	parts := append([]string{sender, m.Kind()}, m.fields()...)
	return []byte(strings.Join(parts, ","))
}

// Decode parses a wire payload. Errors wrap ErrMalformed or ErrUnknownKind.
func Decode(payload []byte) (Envelope, error) {
	parts := strings.Split(strings.TrimSpace(string(payload)), ",")
	if len(parts) < 2 || parts[0] == "" {
		return Envelope{}, fmt.Errorf("multiplayer: decode %q: %w", payload, ErrMalformed)
	}
	env := Envelope{Sender: parts[0]}
	args := parts[2:]

	switch parts[1] {
	case KindStartMultiplayer:
		if len(args) != 0 {
			return Envelope{}, fmt.Errorf("multiplayer: decode %s: %d extra fields: %w", parts[1], len(args), ErrMalformed)
		}
		env.Body = StartMultiplayer{}
	case KindPartnerFound:
		switch len(args) {
		case 0:
			env.Body = PartnerFound{}
		case 1:
			env.Body = PartnerFound{Target: args[0]}
		default:
			return Envelope{}, fmt.Errorf("multiplayer: decode %s: %d fields: %w", parts[1], len(args), ErrMalformed)
		}
	case KindPartnerDied:
		if len(args) != 2 {
			return Envelope{}, fmt.Errorf("multiplayer: decode %s: %d fields: %w", parts[1], len(args), ErrMalformed)
		}
		score, err := parseScore(args[0])
		if err != nil {
			return Envelope{}, fmt.Errorf("multiplayer: decode %s score %q: %w", parts[1], args[0], ErrMalformed)
		}
		ability, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Envelope{}, fmt.Errorf("multiplayer: decode %s ability %q: %w", parts[1], args[1], ErrMalformed)
		}
		env.Body = PartnerDied{Score: score, Ability: ability}
	default:
		return Envelope{}, fmt.Errorf("multiplayer: decode kind %q: %w", parts[1], ErrUnknownKind)
	}
	return env, nil
}

// parseScore accepts integer scores and tolerates a float rendering from
// peers that keep the score as a float.
func parseScore(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
