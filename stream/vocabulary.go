package stream

// Field names shared by the transceiver and packet-core vocabularies.
const (
	FieldPayload   = "payload"
	FieldSOF       = "sof"
	FieldEOF       = "eof"
	FieldValid     = "valid"
	FieldLastBE    = "last_be"
	FieldError     = "error"
	FieldSrcPort   = "src_port"
	FieldDstPort   = "dst_port"
	FieldIPAddress = "ip_address"
	FieldLength    = "length"
)

// TransceiverLayout is the deframed user-stream vocabulary of the serial
// transceiver: payload and framing markers plus the routing metadata the
// link protocol carries.
func TransceiverLayout(dataWidth int) Layout {
	return NewLayout(
		Field{Name: FieldPayload, Width: dataWidth},
		Field{Name: FieldSOF, Width: 1},
		Field{Name: FieldEOF, Width: 1},
		Field{Name: FieldValid, Width: 1},
		Field{Name: FieldLastBE, Width: dataWidth / 8},
		Field{Name: FieldError, Width: 1},
		Field{Name: FieldSrcPort, Width: 16},
		Field{Name: FieldDstPort, Width: 16},
		Field{Name: FieldIPAddress, Width: 32},
		Field{Name: FieldLength, Width: 16},
	)
}

// PacketCoreLayout is the narrower vocabulary of the packet-processing
// core's data-plane endpoints in this configuration.
func PacketCoreLayout(dataWidth int) Layout {
	return NewLayout(
		Field{Name: FieldPayload, Width: dataWidth},
		Field{Name: FieldSOF, Width: 1},
		Field{Name: FieldEOF, Width: 1},
		Field{Name: FieldValid, Width: 1},
	)
}

// DataPlaneOmitSet is the set of transceiver fields the packet core does not
// define; they are never transferred on the data plane.
func DataPlaneOmitSet() []string {
	return []string{
		FieldLastBE,
		FieldError,
		FieldSrcPort,
		FieldDstPort,
		FieldIPAddress,
		FieldLength,
	}
}

// ControlLayout is the control-packet vocabulary. It is opaque to the
// bridging layer: both ends share it by construction and nothing is omitted.
func ControlLayout(dataWidth int) Layout {
	return NewLayout(
		Field{Name: FieldPayload, Width: dataWidth},
		Field{Name: FieldSOF, Width: 1},
		Field{Name: FieldEOF, Width: 1},
		Field{Name: FieldValid, Width: 1},
	)
}
