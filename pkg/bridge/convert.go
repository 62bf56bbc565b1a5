package bridge

import "github.com/vertexml/inferbridge/pkg/native"

// The conversions below are pure lookup tables. They hold no state and are
// safe to call concurrently.

// ToNativeControlMode maps a wrapper model control mode to the engine enum.
func ToNativeControlMode(mode ModelControlMode) (native.ModelControlMode, Error) {
	switch mode {
	case ModelControlNone:
		return native.ModelControlNone, Success
	case ModelControlPoll:
		return native.ModelControlPoll, Success
	case ModelControlExplicit:
		return native.ModelControlExplicit, Success
	}
	return 0, NewError("unsupported model control mode.")
}

// ToNativeLogFormat maps a wrapper log format to the engine enum.
func ToNativeLogFormat(format LogFormat) (native.LogFormat, Error) {
	switch format {
	case LogFormatDefault:
		return native.LogFormatDefault, Success
	case LogFormatISO8601:
		return native.LogFormatISO8601, Success
	}
	return 0, NewError("unsupported log format.")
}

// ToNativeMemoryType maps a wrapper memory type to the engine enum.
func ToNativeMemoryType(memType MemoryType) (native.MemoryType, Error) {
	switch memType {
	case MemoryCPU:
		return native.MemoryCPU, Success
	case MemoryCPUPinned:
		return native.MemoryCPUPinned, Success
	case MemoryGPU:
		return native.MemoryGPU, Success
	}
	return 0, NewError("unsupported memory type.")
}

// FromNativeMemoryType maps an engine memory type to the wrapper enum.
func FromNativeMemoryType(memType native.MemoryType) (MemoryType, Error) {
	switch memType {
	case native.MemoryCPU:
		return MemoryCPU, Success
	case native.MemoryCPUPinned:
		return MemoryCPUPinned, Success
	case native.MemoryGPU:
		return MemoryGPU, Success
	}
	return 0, NewError("unsupported memory type.")
}

// ToNativeDataType maps a wrapper data type to the engine enum. The mapping
// is total: anything unrecognized maps to the engine's invalid value.
func ToNativeDataType(dtype DataType) native.DataType {
	switch dtype {
	case DataTypeBool:
		return native.TypeBool
	case DataTypeUint8:
		return native.TypeUint8
	case DataTypeUint16:
		return native.TypeUint16
	case DataTypeUint32:
		return native.TypeUint32
	case DataTypeUint64:
		return native.TypeUint64
	case DataTypeInt8:
		return native.TypeInt8
	case DataTypeInt16:
		return native.TypeInt16
	case DataTypeInt32:
		return native.TypeInt32
	case DataTypeInt64:
		return native.TypeInt64
	case DataTypeFP16:
		return native.TypeFP16
	case DataTypeFP32:
		return native.TypeFP32
	case DataTypeFP64:
		return native.TypeFP64
	case DataTypeBytes:
		return native.TypeBytes
	case DataTypeBF16:
		return native.TypeBF16
	}
	return native.TypeInvalid
}

// FromNativeDataType maps an engine data type to the wrapper enum. The
// mapping is total: anything unrecognized maps to the sentinel.
func FromNativeDataType(dtype native.DataType) DataType {
	switch dtype {
	case native.TypeBool:
		return DataTypeBool
	case native.TypeUint8:
		return DataTypeUint8
	case native.TypeUint16:
		return DataTypeUint16
	case native.TypeUint32:
		return DataTypeUint32
	case native.TypeUint64:
		return DataTypeUint64
	case native.TypeInt8:
		return DataTypeInt8
	case native.TypeInt16:
		return DataTypeInt16
	case native.TypeInt32:
		return DataTypeInt32
	case native.TypeInt64:
		return DataTypeInt64
	case native.TypeFP16:
		return DataTypeFP16
	case native.TypeFP32:
		return DataTypeFP32
	case native.TypeFP64:
		return DataTypeFP64
	case native.TypeBytes:
		return DataTypeBytes
	case native.TypeBF16:
		return DataTypeBF16
	}
	return DataTypeInvalid
}

// ParseDataType parses a data type token. Each type accepts two spellings, a
// short one and a TYPE_-prefixed one; the BYTES type pairs with TYPE_STRING.
// Matching is case-sensitive. Unrecognized strings yield DataTypeInvalid
// rather than an error; callers must check for the sentinel.
func ParseDataType(dataType string) DataType {
	switch dataType {
	case "BOOL", "TYPE_BOOL":
		return DataTypeBool
	case "UINT8", "TYPE_UINT8":
		return DataTypeUint8
	case "UINT16", "TYPE_UINT16":
		return DataTypeUint16
	case "UINT32", "TYPE_UINT32":
		return DataTypeUint32
	case "UINT64", "TYPE_UINT64":
		return DataTypeUint64
	case "INT8", "TYPE_INT8":
		return DataTypeInt8
	case "INT16", "TYPE_INT16":
		return DataTypeInt16
	case "INT32", "TYPE_INT32":
		return DataTypeInt32
	case "INT64", "TYPE_INT64":
		return DataTypeInt64
	case "FP16", "TYPE_FP16":
		return DataTypeFP16
	case "FP32", "TYPE_FP32":
		return DataTypeFP32
	case "FP64", "TYPE_FP64":
		return DataTypeFP64
	case "BYTES", "TYPE_STRING":
		return DataTypeBytes
	case "BF16", "TYPE_BF16":
		return DataTypeBF16
	}
	return DataTypeInvalid
}

// ParseModelReadyState parses the readiness string reported by the engine.
// Anything unrecognized maps to StateUnknown.
func ParseModelReadyState(state string) ModelReadyState {
	switch state {
	case "READY":
		return StateReady
	case "UNAVAILABLE":
		return StateUnavailable
	case "LOADING":
		return StateLoading
	case "UNLOADING":
		return StateUnloading
	}
	return StateUnknown
}
