package cpu

import (
	"errors"
	"fmt"

	"github.com/born-ml/dtypes/internal/parallel"
	"github.com/born-ml/dtypes/internal/tensor"
)

// BroadcastTo expands x to shape under NumPy broadcasting rules. The result
// keeps x's dtype; x itself is returned when its shape already matches.
func (cpu *CPUBackend) BroadcastTo(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	if x.Shape().Equal(shape) {
		return x, nil
	}
	out, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil {
		return nil, fmt.Errorf("broadcast_to: %w", err)
	}
	if !out.Equal(shape) {
		return nil, fmt.Errorf("broadcast_to: cannot broadcast %v to %v", x.Shape(), shape)
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("broadcast_to: %w", err)
	}

	size := x.DType().Size()
	src, dst := x.Data(), result.Data()
	outStrides := shape.ComputeStrides()
	inStrides := broadcastStrides(x.Shape(), shape)
	parallel.Range(result.NumElements(), func(start, end int) {
		for i := start; i < end; i++ {
			j := flatIndex(i, outStrides, inStrides)
			copy(dst[i*size:(i+1)*size], src[j*size:(j+1)*size])
		}
	}, kernelConfig)

	return result, nil
}

// BroadcastArrays expands every tensor to the shape they broadcast to together.
func (cpu *CPUBackend) BroadcastArrays(xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if len(xs) == 0 {
		return nil, errors.New("broadcast_arrays: no tensors")
	}
	shape := xs[0].Shape()
	for _, x := range xs[1:] {
		var err error
		if shape, _, err = tensor.BroadcastShapes(shape, x.Shape()); err != nil {
			return nil, fmt.Errorf("broadcast_arrays: %w", err)
		}
	}

	out := make([]*tensor.RawTensor, len(xs))
	for i, x := range xs {
		b, err := cpu.BroadcastTo(x, shape)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// broadcastStrides returns inShape's strides laid over outShape, with 0 for
// padded and size-1 dimensions.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	orig := inShape.ComputeStrides()

	for i := range strides {
		j := i - offset
		if j < 0 || inShape[j] == 1 {
			continue
		}
		strides[i] = orig[j]
	}
	return strides
}

// flatIndex maps the output element i to its source element.
func flatIndex(i int, outStrides, inStrides []int) int {
	idx := 0
	for d, stride := range outStrides {
		idx += (i / stride) * inStrides[d]
		i %= stride
	}
	return idx
}
