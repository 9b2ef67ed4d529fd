package onnx

import "fmt"

// DataType is an ONNX TensorProto.DataType code.
type DataType int32

// ONNX data types (TensorProto.DataType).
const (
	Undefined  DataType = 0
	Float      DataType = 1  // float32
	Uint8      DataType = 2  // uint8
	Int8       DataType = 3  // int8
	Uint16     DataType = 4  // uint16
	Int16      DataType = 5  // int16
	Int32      DataType = 6  // int32
	Int64      DataType = 7  // int64
	String     DataType = 8  // string
	Bool       DataType = 9  // bool
	Float16    DataType = 10 // float16
	Double     DataType = 11 // float64
	Uint32     DataType = 12 // uint32
	Uint64     DataType = 13 // uint64
	Complex64  DataType = 14 // complex64
	Complex128 DataType = 15 // complex128
	Bfloat16   DataType = 16 // bfloat16
)

var dataTypeNames = map[DataType]string{
	Undefined:  "UNDEFINED",
	Float:      "FLOAT",
	Uint8:      "UINT8",
	Int8:       "INT8",
	Uint16:     "UINT16",
	Int16:      "INT16",
	Int32:      "INT32",
	Int64:      "INT64",
	String:     "STRING",
	Bool:       "BOOL",
	Float16:    "FLOAT16",
	Double:     "DOUBLE",
	Uint32:     "UINT32",
	Uint64:     "UINT64",
	Complex64:  "COMPLEX64",
	Complex128: "COMPLEX128",
	Bfloat16:   "BFLOAT16",
}

// String returns the TensorProto enum name.
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int32(t))
}
