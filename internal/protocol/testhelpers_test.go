package protocol

// Test-only encoders, independent of bcd/bcdMSB, so higher-level decode
// tests aren't tautological against the primitives under test in
// bcd_test.go.

var testBCDWeights = [8]int{1, 2, 4, 8, 10, 20, 40, 80}

// encodeBCDLSB writes value into code[first..last] LSB-first, assigning
// the largest weights first so the tens and units digits come out right.
func encodeBCDLSB(code *[60]int, first, last, value int) {
	for i := last; i >= first; i-- {
		w := testBCDWeights[i-first]
		if value >= w {
			code[i] = 1
			value -= w
		} else {
			code[i] = 0
		}
	}
}

// encodeBCDMSB writes value into code[first..last] MSB-first, assigning
// the largest weights first so the tens and units digits come out right.
func encodeBCDMSB(code *[60]int, first, last, value int) {
	for i := first; i <= last; i++ {
		w := testBCDWeights[last-i]
		if value >= w {
			code[i] = 1
			value -= w
		} else {
			code[i] = 0
		}
	}
}

// xorRange computes the parity of code[first..last] without going
// through the package's own xorBits, for building correct parity bits in
// tests.
func xorRange(code *[60]int, first, last int) int {
	x := 0
	for i := first; i <= last; i++ {
		x ^= code[i]
	}
	return x
}

// buildDCF77TimeCode encodes a full DCF77/TDF-style 60-bit frame for
// minute/hour/day/month/year plus the CEST flag, with correct parity
// bits, ready to decode.
func buildDCF77TimeCode(minute, hour, day, month, year int, cest bool) [60]int {
	var code [60]int
	if cest {
		code[17] = 1
	}
	encodeBCDLSB(&code, 21, 27, minute)
	code[28] = xorRange(&code, 21, 27)
	encodeBCDLSB(&code, 29, 34, hour)
	code[35] = xorRange(&code, 29, 34)
	encodeBCDLSB(&code, 36, 41, day)
	encodeBCDLSB(&code, 45, 49, month)
	encodeBCDLSB(&code, 50, 57, year-2000)
	code[58] = xorRange(&code, 36, 57)
	return code
}

// buildMSF60TimeCode encodes a full MSF60-style frame across the A and B
// timecode buffers with correct odd-parity bits.
func buildMSF60TimeCode(minute, hour, day, month, year int, bst bool) (a, b [60]int) {
	encodeBCDMSB(&a, 45, 51, minute)
	encodeBCDMSB(&a, 39, 44, hour)
	encodeBCDMSB(&a, 30, 35, day)
	encodeBCDMSB(&a, 25, 29, month)
	encodeBCDMSB(&a, 17, 24, year-2000)

	// oddParity compares xorBits(firstBit,lastBit) against the B-stream
	// parity bit; "odd" means the xor must differ from the parity bit, so
	// store the xor itself inverted to satisfy oddParity(..) == true.
	b[57] = xorRange(&a, 39, 51) ^ 1
	b[55] = xorRange(&a, 25, 35) ^ 1
	b[54] = xorRange(&a, 17, 24) ^ 1
	if bst {
		b[58] = 1
	}
	return a, b
}
