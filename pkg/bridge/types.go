package bridge

// DataType is the wrapper's tensor data type. DataTypeInvalid is the
// sentinel for "no valid mapping"; callers must check for it.
type DataType int

const (
	DataTypeInvalid DataType = iota
	DataTypeBool
	DataTypeUint8
	DataTypeUint16
	DataTypeUint32
	DataTypeUint64
	DataTypeInt8
	DataTypeInt16
	DataTypeInt32
	DataTypeInt64
	DataTypeFP16
	DataTypeFP32
	DataTypeFP64
	DataTypeBytes
	DataTypeBF16
)

// String returns the canonical short token for the data type, or "<invalid>"
// for the sentinel and out-of-range values.
func (d DataType) String() string {
	switch d {
	case DataTypeBool:
		return "BOOL"
	case DataTypeUint8:
		return "UINT8"
	case DataTypeUint16:
		return "UINT16"
	case DataTypeUint32:
		return "UINT32"
	case DataTypeUint64:
		return "UINT64"
	case DataTypeInt8:
		return "INT8"
	case DataTypeInt16:
		return "INT16"
	case DataTypeInt32:
		return "INT32"
	case DataTypeInt64:
		return "INT64"
	case DataTypeFP16:
		return "FP16"
	case DataTypeFP32:
		return "FP32"
	case DataTypeFP64:
		return "FP64"
	case DataTypeBytes:
		return "BYTES"
	case DataTypeBF16:
		return "BF16"
	}
	return "<invalid>"
}

// MemoryType classifies where a buffer lives.
type MemoryType int

const (
	MemoryCPU MemoryType = iota
	MemoryCPUPinned
	MemoryGPU
)

// String renders each known value as its canonical uppercase token and any
// unrecognized value as "<invalid>".
func (m MemoryType) String() string {
	switch m {
	case MemoryCPU:
		return "CPU"
	case MemoryCPUPinned:
		return "CPU_PINNED"
	case MemoryGPU:
		return "GPU"
	}
	return "<invalid>"
}

// ModelControlMode selects how the engine manages model loading.
type ModelControlMode int

const (
	ModelControlNone ModelControlMode = iota
	ModelControlPoll
	ModelControlExplicit
)

// LogFormat selects the engine's log timestamp format.
type LogFormat int

const (
	LogFormatDefault LogFormat = iota
	LogFormatISO8601
)

// ModelReadyState is the readiness of a model as reported by the engine.
type ModelReadyState int

const (
	StateUnknown ModelReadyState = iota
	StateReady
	StateUnavailable
	StateLoading
	StateUnloading
)

func (s ModelReadyState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateUnavailable:
		return "UNAVAILABLE"
	case StateLoading:
		return "LOADING"
	case StateUnloading:
		return "UNLOADING"
	}
	return "UNKNOWN"
}
