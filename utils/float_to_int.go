package utils

// Float32ToInt16 quantizes a [-1, 1] amplitude to 16-bit PCM.
// Out-of-range input is clamped; rounding is half away from zero, so the
// full scale is symmetric at ±32767.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := x * 32767.0
	if v >= 0 {
		return int16(v + 0.5)
	}
	return int16(v - 0.5)
}

// Float32ToUint8 quantizes a [-1, 1] amplitude to the unsigned 8-bit PCM
// convention, where 128 is silence.
func Float32ToUint8(x float32) uint8 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := x * 127.0
	var s int
	if v >= 0 {
		s = int(v + 0.5)
	} else {
		s = int(v - 0.5)
	}
	return uint8(s + 128)
}

// Float32ToInt24 quantizes a [-1, 1] amplitude to 24-bit PCM, returned
// in the low three bytes of an int32.
func Float32ToInt24(x float32) int32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := x * 8388607.0
	if v >= 0 {
		return int32(v + 0.5)
	}
	return int32(v - 0.5)
}

// Float32ToInt32 quantizes a [-1, 1] amplitude to 32-bit PCM. The
// scaling runs in float64: float32 cannot represent every 32-bit
// integer, and rounding in single precision would cost the low bits.
func Float32ToInt32(x float32) int32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := float64(x) * 2147483647.0
	if v >= 0 {
		return int32(v + 0.5)
	}
	return int32(v - 0.5)
}
