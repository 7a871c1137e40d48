package kernel

import (
	"runtime"
	"sync/atomic"
)

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 64

// Message is a fixed-size message envelope.
type Message struct {
	From Endpoint
	Kind uint8
	Len  uint16
	Data [MaxMessageBytes]byte
}

const (
	// MsgInput carries raw console input bytes.
	MsgInput uint8 = iota + 1
	// MsgHangup reports that a producer has stopped.
	MsgHangup
)

// Payload returns the used part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

const mailboxSlots = 8

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It is designed for bare-metal use: no allocations, busy-wait with Gosched().
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	ready [mailboxSlots]atomic.Bool
	slots [mailboxSlots]Message
}

// TrySend attempts to enqueue a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	for {
		head := mb.head.Load()
		tail := mb.tail.Load()
		if head-tail >= mailboxSlots {
			return false
		}

		// Reserve a slot.
		if mb.head.CompareAndSwap(head, head+1) {
			slot := head % mailboxSlots
			mb.slots[slot] = msg
			mb.ready[slot].Store(true)
			return true
		}
	}
}

// Send enqueues a message, blocking until it succeeds.
func (mb *Mailbox) Send(msg Message) {
	for !mb.TrySend(msg) {
		runtime.Gosched()
	}
}

// SendBytes queues p as one or more messages of the given kind, splitting it
// into MaxMessageBytes chunks. It blocks while the mailbox is full.
func (mb *Mailbox) SendBytes(from Endpoint, kind uint8, p []byte) {
	for {
		var msg Message
		msg.From = from
		msg.Kind = kind
		n := copy(msg.Data[:], p)
		msg.Len = uint16(n)
		mb.Send(msg)
		p = p[n:]
		if len(p) == 0 {
			return
		}
	}
}

// TryRecv attempts to dequeue one message, returning false if empty or if the
// oldest slot is reserved but not yet written.
func (mb *Mailbox) TryRecv() (Message, bool) {
	tail := mb.tail.Load()
	head := mb.head.Load()
	if tail == head {
		return Message{}, false
	}

	slot := tail % mailboxSlots
	if !mb.ready[slot].Load() {
		return Message{}, false
	}
	msg := mb.slots[slot]
	mb.ready[slot].Store(false)
	mb.tail.Store(tail + 1)
	return msg, true
}
