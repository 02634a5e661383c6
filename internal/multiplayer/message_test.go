package multiplayer

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"start", StartMultiplayer{}, "abc,start_multiplayer"},
		{"found bare", PartnerFound{}, "abc,partner_found"},
		{"found addressed", PartnerFound{Target: "def"}, "abc,partner_found,def"},
		{"died", PartnerDied{Score: 42, Ability: 77}, "abc,partner_died,42,77"},
		{"died fractional", PartnerDied{Score: 3, Ability: 12.5}, "abc,partner_died,3,12.5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(Encode("abc", tc.msg)); got != tc.want {
				t.Errorf("Encode() = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Envelope
	}{
		{"start", "abc,start_multiplayer", Envelope{Sender: "abc", Body: StartMultiplayer{}}},
		{"found bare", "abc,partner_found", Envelope{Sender: "abc", Body: PartnerFound{}}},
		{"found addressed", "abc,partner_found,def", Envelope{Sender: "abc", Body: PartnerFound{Target: "def"}}},
		{"died", "abc,partner_died,42,77", Envelope{Sender: "abc", Body: PartnerDied{Score: 42, Ability: 77}}},
		{"died float score", "abc,partner_died,42.0,-1.5", Envelope{Sender: "abc", Body: PartnerDied{Score: 42, Ability: -1.5}}},
		{"trailing newline", "abc,start_multiplayer\n", Envelope{Sender: "abc", Body: StartMultiplayer{}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.payload))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Decode() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		payload string
		want    error
	}{
		{"", ErrMalformed},
		{"abc", ErrMalformed},
		{",start_multiplayer", ErrMalformed},
		{"abc,start_multiplayer,extra", ErrMalformed},
		{"abc,partner_found,a,b", ErrMalformed},
		{"abc,partner_died,42", ErrMalformed},
		{"abc,partner_died,lots,77", ErrMalformed},
		{"abc,partner_died,42,many", ErrMalformed},
		{"abc,high_five", ErrUnknownKind},
	}
	for _, tc := range tests {
		_, err := Decode([]byte(tc.payload))
		if !errors.Is(err, tc.want) {
			t.Errorf("Decode(%q) error = %v, expected %v", tc.payload, err, tc.want)
		}
	}
}
