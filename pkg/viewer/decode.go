package viewer

// Decode classifies a raw event and extracts its channel, drum flag and payload.
// It never fails; short or odd byte sequences simply yield less information.
func Decode(ev RawEvent, drums DrumChannels) Event {
	e := Event{
		Track:   ev.Track,
		Time:    ev.AbsoluteTime,
		Delta:   ev.DeltaTime,
		Status:  ev.Status,
		Kind:    Classify(ev.Status),
		Channel: -1,
		Length:  len(ev.RawBytes),
		Bytes:   ev.RawBytes,
	}

	n := ev.DataLen
	if n < 0 {
		n = 0
	}
	if n > 2 {
		n = 2
	}
	e.Data = []uint8{ev.Data1, ev.Data2}[:n]

	if e.Kind.IsChannelVoice() {
		ch := ev.Status & 0x0F
		e.Channel = int(ch)
		e.Drum = drums != nil && drums.IsDrum(ch)
	}

	switch e.Kind {
	case KindMeta:
		e.MetaType, e.Payload, e.HasMetaType = metaPayload(ev)
	case KindSysEx, KindSysExEscape:
		e.Payload = sysexPayload(ev.RawBytes)
	}
	return e
}

// metaPayload splits FF <type> <len> <data...>. When the raw bytes are too short
// to hold the type, Data1 is used instead.
func metaPayload(ev RawEvent) (uint8, []byte, bool) {
	raw := ev.RawBytes
	if len(raw) < 2 {
		if ev.DataLen > 0 {
			return ev.Data1, nil, true
		}
		return 0, nil, false
	}
	metaType := raw[1]
	size, n, ok := readVarInt(raw[2:])
	if !ok {
		return metaType, nil, true
	}
	data := raw[2+n:]
	if uint64(len(data)) > uint64(size) {
		data = data[:size]
	}
	return metaType, data, true
}

// sysexPayload returns the bytes between the leading F0/F7 and an optional
// trailing F7. raw is in wire form (F0 data F7), with no length prefix.
func sysexPayload(raw []byte) []byte {
	if len(raw) < 2 {
		return nil
	}
	body := raw[1:]
	if len(body) > 0 && body[len(body)-1] == 0xF7 && raw[0] == 0xF0 {
		body = body[:len(body)-1]
	}
	return body
}

// readVarInt reads an SMF variable-length quantity of at most four bytes
func readVarInt(b []byte) (uint32, int, bool) {
	var v uint32
	for i := 0; i < 4 && i < len(b); i++ {
		v = v<<7 | uint32(b[i]&0x7F)
		if b[i]&0x80 == 0 {
			return v, i + 1, true
		}
	}
	return 0, 0, false
}
