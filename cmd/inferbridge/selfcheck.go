package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/common-nighthawk/go-figure"
	"github.com/urfave/cli/v2"
	"github.com/vertexml/inferbridge/internal/config"
	"github.com/vertexml/inferbridge/pkg/bridge"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

func selfcheckCommand(cfg **config.Config, log **zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "selfcheck",
		Usage: "Exercise the allocator and translation tables against the configured backend",
		Action: func(c *cli.Context) error {
			return runSelfcheck(*cfg, (*log).Named("selfcheck"))
		},
	}
}

func runSelfcheck(cfg *config.Config, log *zap.Logger) error {
	banner := figure.NewFigure("inferbridge", "", true)
	banner.Print()
	fmt.Println("")

	alloc, err := bridge.NewAllocator(cfg.Allocator.Backend, log)
	if err != nil {
		return err
	}
	ra := bridge.NewResponseAllocator(alloc, log)

	if err := checkZeroByte(ra); err != nil {
		return err
	}
	if err := checkLocations(ra, cfg.Allocator.DeviceID, log); err != nil {
		return err
	}
	if err := checkBufferIntegrity(ra); err != nil {
		return err
	}
	if err := checkTranslationTables(); err != nil {
		return err
	}

	log.Info("selfcheck passed")
	return nil
}

// checkZeroByte verifies that a zero-byte request yields no buffer and no
// tag without being an error.
func checkZeroByte(ra *bridge.ResponseAllocator) error {
	buf, tag, _, _, nerr := ra.Alloc("logits", 0, bridge.MemoryCPU, 0)
	if nerr != nil {
		return errors.New(nerr.Error())
	}
	if buf != nil || tag != nil {
		return errors.New("zero-byte allocation produced a buffer")
	}
	return nil
}

// checkLocations runs an allocate/release round trip for each preferred
// location, including an unrecognized one that must coerce to the default.
func checkLocations(ra *bridge.ResponseAllocator, deviceID int64, log *zap.Logger) error {
	preferred := []bridge.MemoryType{
		bridge.MemoryCPU,
		bridge.MemoryCPUPinned,
		bridge.MemoryGPU,
		bridge.MemoryType(99),
	}
	for _, p := range preferred {
		buf, tag, actualType, actualID, nerr := ra.Alloc("selfcheck", 1024, p, deviceID)
		if nerr != nil {
			// Device locations may legitimately fail on machines without
			// the hardware; report and keep going.
			log.Warn("allocation failed",
				zap.Stringer("preferred", p),
				zap.String("error", nerr.Error()))
			continue
		}
		switch actualType {
		case bridge.MemoryCPU, bridge.MemoryCPUPinned, bridge.MemoryGPU:
		default:
			return fmt.Errorf("allocation reported unknown memory type %d", actualType)
		}
		ra.Release(buf, tag, buf.ByteSize, actualType, actualID)
	}
	return nil
}

// checkBufferIntegrity multiplies two small matrices into an allocated host
// buffer and compares the result against a gonum reference product.
func checkBufferIntegrity(ra *bridge.ResponseAllocator) error {
	const dim = 16
	a := make([]float64, dim*dim)
	b := make([]float64, dim*dim)
	for i := range a {
		a[i] = float64(i%7) + 0.5
		b[i] = float64(i%5) - 1.25
	}

	buf, tag, actualType, actualID, nerr := ra.Alloc("product", dim*dim*4, bridge.MemoryCPU, 0)
	if nerr != nil {
		return errors.New(nerr.Error())
	}
	if buf == nil || buf.Data == nil {
		return errors.New("host allocation returned no addressable buffer")
	}
	defer ra.Release(buf, tag, buf.ByteSize, actualType, actualID)

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum float64
			for l := 0; l < dim; l++ {
				sum += a[i*dim+l] * b[l*dim+j]
			}
			binary.LittleEndian.PutUint32(buf.Data[(i*dim+j)*4:], math.Float32bits(float32(sum)))
		}
	}

	var ref mat.Dense
	ref.Mul(mat.NewDense(dim, dim, a), mat.NewDense(dim, dim, b))
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			got := float64(math.Float32frombits(binary.LittleEndian.Uint32(buf.Data[(i*dim+j)*4:])))
			if math.Abs(got-ref.At(i, j)) > 1e-3 {
				return fmt.Errorf("buffer integrity check failed at (%d,%d): got %g want %g", i, j, got, ref.At(i, j))
			}
		}
	}
	return nil
}

// checkTranslationTables round-trips the memory type mappings and spot
// checks the data type parser.
func checkTranslationTables() error {
	for _, m := range []bridge.MemoryType{bridge.MemoryCPU, bridge.MemoryCPUPinned, bridge.MemoryGPU} {
		n, err := bridge.ToNativeMemoryType(m)
		if !err.IsOk() {
			return errors.New(err.Message())
		}
		back, err := bridge.FromNativeMemoryType(n)
		if !err.IsOk() {
			return errors.New(err.Message())
		}
		if back != m {
			return fmt.Errorf("memory type %s did not survive the round trip", m)
		}
	}

	for _, spelling := range []string{"FP32", "TYPE_FP32"} {
		if bridge.ParseDataType(spelling) != bridge.DataTypeFP32 {
			return fmt.Errorf("parsing %q did not yield FP32", spelling)
		}
	}
	if bridge.ParseDataType("fp32") != bridge.DataTypeInvalid {
		return errors.New("data type parsing is expected to be case-sensitive")
	}
	return nil
}
