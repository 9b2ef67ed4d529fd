// Package backend defines the capability interface every Born backend exposes
// to dtype resolution, plus the promotion, casting and nearest-valid helpers
// that concrete backends share.
package backend

import "github.com/born-ml/dtypes/internal/dtype"

// Provider is the narrow view of a compute backend that dtype resolution
// consumes. Native dtype handles are backend-specific, hence the use of any.
//
// Implementations:
//   - cpu: born's pure Go backend, native tensor.DataType
//   - webgpu: WGSL compute shaders, native webgpu.ScalarType
//   - onnx: ONNX runtime graphs, native onnx.DataType
//   - ggml: GGML kernels, native ggml.Type
//   - gorgonia: gorgonia tensors, native gorgonia Dtype
type Provider interface {
	// Metadata
	Name() string

	// Conversion between canonical and native representations
	AsDtype(x any) (dtype.Dtype, error)   // native handle, Dtype or string -> canonical
	AsNative(d dtype.Dtype) (any, error)  // canonical -> native handle
	DtypeBits(d dtype.Dtype) (int, error) // bit width per backend table

	// Promotion and casting
	ClosestValid(d dtype.Dtype) (dtype.Dtype, error)
	CanCast(from, to dtype.Dtype) bool
	ResultType(ds ...dtype.Dtype) (dtype.Dtype, error)

	// Static dtype sets; together they partition dtype.All
	ValidDtypes() []dtype.Dtype
	InvalidDtypes() []dtype.Dtype

	// Machine limits
	IInfo(d dtype.Dtype) (dtype.IInfo, error)
	FInfo(d dtype.Dtype) (dtype.FInfo, error)
}

// Annotations maps an operation name to the dtypes the backend's kernel for
// that operation rejects.
type Annotations map[string][]dtype.Dtype

// Annotated is implemented by providers that declare per-operation dtype
// restrictions.
type Annotated interface {
	Annotations() Annotations
}
