package bus

import (
	"context"
	"testing"
)

func TestDialMemorySharesLocalBroker(t *testing.T) {
	local := NewBroker()
	ctx := context.Background()
	opts := DialOptions{Transport: TransportMemory, Topic: "race", Local: local}

	a, err := Dial(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := Dial(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	sub, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Publish(ctx, []byte("hi")); err != nil {
		t.Fatal(err)
	}
	if got := receive(t, sub); string(got) != "hi" {
		t.Errorf("received %q, want hi", got)
	}
}

func TestDialUnknownTransport(t *testing.T) {
	if _, err := Dial(context.Background(), DialOptions{Transport: "carrier-pigeon"}); err == nil {
		t.Error("expected an error for an unknown transport")
	}
}
