package tensor

// FromSlice creates a CPU tensor holding a copy of data with the given shape.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, ShapeMismatchf("from slice: %d values for shape %v", len(data), shape)
	}
	raw, err := NewRaw(shape, inferDataType[T](), CPU)
	if err != nil {
		return nil, err
	}
	switch values := any(data).(type) {
	case []float32:
		copy(raw.AsFloat32(), values)
	case []float64:
		copy(raw.AsFloat64(), values)
	case []int32:
		copy(raw.AsInt32(), values)
	case []bool:
		copy(raw.AsBool(), values)
	}
	return raw, nil
}

// FromFloat64s creates a tensor of the given dtype from float64 values.
func FromFloat64s(values []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	if err := raw.SetFloat64s(values); err != nil {
		return nil, err
	}
	return raw, nil
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	if value == 0 {
		return raw, nil
	}
	switch dtype {
	case Float32:
		fillSlice(raw.AsFloat32(), float32(value))
	case Float64:
		fillSlice(raw.AsFloat64(), value)
	case Int32:
		fillSlice(raw.AsInt32(), int32(value))
	case Bool:
		fillSlice(raw.AsBool(), true)
	}
	return raw, nil
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return NewRaw(shape, dtype, CPU)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	return Full(shape, 1, dtype)
}

func fillSlice[T DType](data []T, value T) {
	for i := range data {
		data[i] = value
	}
}
