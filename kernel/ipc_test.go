package kernel

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	var mb Mailbox

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	var mb Mailbox
	var msg Message

	for i := 0; i < mailboxSlots; i++ {
		if ok := mb.TrySend(msg); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(msg); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}

	for i := 0; i < mailboxSlots; i++ {
		if _, ok := mb.TryRecv(); !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
	}
}

func TestMailboxSendBytesSplits(t *testing.T) {
	var mb Mailbox
	in := bytes.Repeat([]byte("0123456789"), 15) // 150 bytes -> 64+64+22

	mb.SendBytes(EPSerial, MsgInput, in)

	var got []byte
	var lens []int
	for {
		msg, ok := mb.TryRecv()
		if !ok {
			break
		}
		if msg.From != EPSerial || msg.Kind != MsgInput {
			t.Fatalf("msg from=%s kind=%d, want serial/%d", msg.From, msg.Kind, MsgInput)
		}
		lens = append(lens, int(msg.Len))
		got = append(got, msg.Payload()...)
	}
	if !bytes.Equal(got, in) {
		t.Fatalf("reassembled %q, want %q", got, in)
	}
	if len(lens) != 3 || lens[0] != MaxMessageBytes || lens[2] != 22 {
		t.Fatalf("chunk lengths = %v, want [64 64 22]", lens)
	}
}

func TestMailboxSendBytesEmpty(t *testing.T) {
	var mb Mailbox
	mb.SendBytes(EPSerial, MsgHangup, nil)

	msg, ok := mb.TryRecv()
	if !ok || msg.Kind != MsgHangup || len(msg.Payload()) != 0 {
		t.Fatalf("TryRecv() = %+v, %v; want empty hangup", msg.Kind, ok)
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	var mb Mailbox

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				id := uint32(producerID*perProd + i)
				var buf [4]byte
				binary.LittleEndian.PutUint32(buf[:], id)
				mb.SendBytes(Endpoint(producerID), MsgInput, buf[:])
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		msg, ok := mb.TryRecv()
		for !ok {
			runtime.Gosched()
			msg, ok = mb.TryRecv()
		}
		if msg.Len != 4 {
			t.Fatalf("TryRecv() msg.Len = %d, want 4", msg.Len)
		}
		id := binary.LittleEndian.Uint32(msg.Payload())
		if int(id) >= total {
			t.Fatalf("TryRecv() id = %d, want < %d", id, total)
		}
		if int(id)/perProd != int(msg.From) {
			t.Fatalf("TryRecv() id %d tagged from %d", id, msg.From)
		}
		if seen[id] {
			t.Fatalf("TryRecv() duplicate id %d", id)
		}
		seen[id] = true
	}

	wg.Wait()
}

func TestEndpointString(t *testing.T) {
	tcs := map[Endpoint]string{Endpoint(0): "unknown", EPSerial: "serial", Endpoint(9): "unknown"}
	for ep, want := range tcs {
		if got := ep.String(); got != want {
			t.Fatalf("Endpoint(%d).String() = %q, want %q", ep, got, want)
		}
	}
}
