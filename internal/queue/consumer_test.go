package queue

import (
	"encoding/json"
	"errors"
	"testing"
)

type recordingNotifier struct {
	events []BookingCreatedEvent
	err    error
}

func (r *recordingNotifier) SendBookingConfirmation(ev BookingCreatedEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestHandleMessage(t *testing.T) {
	ev := BookingCreatedEvent{
		BookingID:        11,
		UserName:         "Greta",
		UserEmail:        "greta@example.com",
		HotelName:        "Seaside",
		CheckInDate:      "2024-03-06",
		CheckOutDate:     "2024-03-08",
		Nights:           2,
		Guests:           2,
		TotalAmountCents: 20000,
		Currency:         "usd",
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}

	n := &recordingNotifier{}
	if err := handleMessage(body, n); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if len(n.events) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(n.events))
	}
	if n.events[0] != ev {
		t.Errorf("delivered event = %+v, want %+v", n.events[0], ev)
	}
}

func TestHandleMessageBadJSON(t *testing.T) {
	n := &recordingNotifier{}
	if err := handleMessage([]byte("{not json"), n); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if len(n.events) != 0 {
		t.Error("notifier must not be called for malformed payloads")
	}
}

func TestHandleMessageNotifierFailure(t *testing.T) {
	n := &recordingNotifier{err: errors.New("smtp down")}
	body, _ := json.Marshal(BookingCreatedEvent{BookingID: 11})
	if err := handleMessage(body, n); err == nil {
		t.Fatal("notifier failure must propagate so the message is rejected")
	}
}
