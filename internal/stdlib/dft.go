package stdlib

import (
	"math"
	"math/cmplx"

	"vlsng/internal/errors"
	"vlsng/internal/value"
)

// DFT computes the O(n^2) discrete Fourier transform, normalised by n.
var procDFT = &value.Procedure{
	Name: "DFT", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		return value.FromSequence(dft(seq)), nil
	},
}

func dft(seq value.Sequence) value.Sequence {
	n := len(seq)
	out := make(value.Sequence, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			angle := -2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += complex(seq[j].Real, seq[j].Imag) * cmplx.Exp(complex(0, angle))
		}
		sum /= complex(float64(n), 0)
		out[k] = value.Number{Real: real(sum), Imag: imag(sum)}
	}
	return out
}

// FFT computes the radix-2 Cooley-Tukey transform in-place on a power-of-two
// length sequence, normalised by n.
var procFFT = &value.Procedure{
	Name: "FFT", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		seq, err := args[0].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		n := len(seq)
		if n == 0 || n&(n-1) != 0 {
			return value.TypedValue{}, errors.Newf(errors.TypeArity, "FFT requires a power-of-two length, got %d", n)
		}
		buf := make([]complex128, n)
		for i, v := range seq {
			buf[i] = complex(v.Real, v.Imag)
		}
		fftRadix2(buf)
		out := make(value.Sequence, n)
		for i, c := range buf {
			c /= complex(float64(n), 0)
			out[i] = value.Number{Real: real(c), Imag: imag(c)}
		}
		return value.FromSequence(out), nil
	},
}

// fftRadix2 performs an in-place iterative Cooley-Tukey FFT (bit-reversal
// permutation followed by butterfly stages), unnormalised.
func fftRadix2(a []complex128) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wlen := cmplx.Exp(complex(0, angle))
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for k := 0; k < length/2; k++ {
				u := a[i+k]
				v := a[i+k+length/2] * w
				a[i+k] = u + v
				a[i+k+length/2] = u - v
				w *= wlen
			}
		}
	}
}
