package kernel

// Endpoint identifies the producer of a message.
type Endpoint uint8

// EPSerial tags input read from the serial port. The zero Endpoint is unset.
const EPSerial Endpoint = 1

func (e Endpoint) String() string {
	switch e {
	case EPSerial:
		return "serial"
	default:
		return "unknown"
	}
}
