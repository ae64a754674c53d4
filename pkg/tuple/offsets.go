package tuple

// PackOffsets encodes a list of sub-record byte lengths as an offset table:
// a count varint followed by one varint per length. It is how pkg/store
// locates individual records inside a single batched value without
// scanning the whole payload.
func PackOffsets(lengths []uint64) []byte {
	buf := appendVarint(nil, uint64(len(lengths)), 0)
	for _, l := range lengths {
		buf = appendVarint(buf, l, 0)
	}
	return buf
}

// UnpackOffsets decodes an offset table produced by PackOffsets into the
// running-sum byte offsets of each sub-record (offsets[0] is always 0) and
// reports how many bytes of buf the table itself occupied. The returned
// slice has len(lengths)+1 entries so offsets[i] and offsets[i+1] bound
// sub-record i.
func UnpackOffsets(buf []byte) (offsets []uint64, consumed int, err error) {
	r := newReader(buf)
	count, err := readVarint(r, 0)
	if err != nil {
		return nil, 0, err
	}
	offsets = make([]uint64, count+1)
	var sum uint64
	for i := uint64(0); i < count; i++ {
		l, err := readVarint(r, 0)
		if err != nil {
			return nil, 0, err
		}
		sum += l
		offsets[i+1] = sum
	}
	return offsets, r.pos, nil
}
