//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/tensor"
)

// Backend implements tensor.Backend on WebGPU via zero-CGO native bindings.
// Only float32 tensors run on the GPU; float64 and the scalar-function
// primitives (Scale, Sum, Map) fall back to the CPU backend.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline caches, keyed by shader name.
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	fallback *cpu.Backend
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = errors.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrap(adapterErr, "webgpu: failed to request adapter")
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(deviceErr, "webgpu: failed to request device")
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("webgpu: failed to get queue")
	}

	klog.V(1).Info("webgpu backend initialized")

	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		fallback:  cpu.New(),
	}, nil
}

// Release frees all GPU resources held by the backend.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.pipelines = make(map[string]*wgpu.ComputePipeline)
	b.shaders = make(map[string]*wgpu.ShaderModule)
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Add performs element-wise addition on the GPU.
func (b *Backend) Add(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	if x.DType() != tensor.Float32 {
		return b.fallback.Add(x, y)
	}
	return b.runBinaryOp(x, y, "add", addShader)
}

// Sub performs element-wise subtraction on the GPU.
func (b *Backend) Sub(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	if x.DType() != tensor.Float32 {
		return b.fallback.Sub(x, y)
	}
	return b.runBinaryOp(x, y, "sub", subShader)
}

// Mul performs element-wise multiplication on the GPU.
func (b *Backend) Mul(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	if x.DType() != tensor.Float32 {
		return b.fallback.Mul(x, y)
	}
	return b.runBinaryOp(x, y, "mul", mulShader)
}

// MatMul performs 2-D matrix multiplication on the GPU.
func (b *Backend) MatMul(x, y *tensor.Tensor) (*tensor.Tensor, error) {
	if x.DType() != tensor.Float32 {
		return b.fallback.MatMul(x, y)
	}
	if len(x.Shape()) != 2 || len(y.Shape()) != 2 {
		return nil, errors.Wrapf(tensor.ErrShape, "matmul: expected 2-D operands, got %v and %v", x.Shape(), y.Shape())
	}
	m, k := x.Shape()[0], x.Shape()[1]
	k2, n := y.Shape()[0], y.Shape()[1]
	if k != k2 {
		return nil, errors.Wrapf(tensor.ErrShape, "matmul: inner dimensions %d vs %d", k, k2)
	}
	if x.DType() != y.DType() {
		return nil, errors.Wrapf(tensor.ErrShape, "matmul: dtype %s vs %s", x.DType(), y.DType())
	}

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(m))
	binary.LittleEndian.PutUint32(params[4:8], uint32(k))
	binary.LittleEndian.PutUint32(params[8:12], uint32(n))

	out, err := tensor.New(tensor.Shape{m, n}, x.DType())
	if err != nil {
		return nil, err
	}
	err = b.dispatch("matmul", matmulShader, params,
		[][]byte{x.Data(), y.Data()}, out.Data(),
		uint32((n+15)/16), uint32((m+15)/16))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Transpose swaps the two axes of a 2-D tensor on the GPU.
func (b *Backend) Transpose(x *tensor.Tensor) (*tensor.Tensor, error) {
	if x.DType() != tensor.Float32 {
		return b.fallback.Transpose(x)
	}
	if len(x.Shape()) != 2 {
		return nil, errors.Wrapf(tensor.ErrShape, "transpose: expected 2-D tensor, got %v", x.Shape())
	}
	rows, cols := x.Shape()[0], x.Shape()[1]

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(rows))
	binary.LittleEndian.PutUint32(params[4:8], uint32(cols))

	out, err := tensor.New(tensor.Shape{cols, rows}, x.DType())
	if err != nil {
		return nil, err
	}
	err = b.dispatch("transpose", transposeShader, params,
		[][]byte{x.Data()}, out.Data(),
		uint32((cols+15)/16), uint32((rows+15)/16))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Scale multiplies every element by a scalar. Runs on the CPU; scalar
// closures cannot cross the shader boundary.
func (b *Backend) Scale(x *tensor.Tensor, c float64) (*tensor.Tensor, error) {
	return b.fallback.Scale(x, c)
}

// Sum reduces all elements to a single-element tensor. Runs on the CPU.
func (b *Backend) Sum(x *tensor.Tensor) (*tensor.Tensor, error) {
	return b.fallback.Sum(x)
}

// Map applies an arbitrary Go function element-wise. Runs on the CPU.
func (b *Backend) Map(x *tensor.Tensor, f func(float64) float64) (*tensor.Tensor, error) {
	return b.fallback.Map(x, f)
}

// runBinaryOp executes an element-wise binary shader over two same-shape tensors.
func (b *Backend) runBinaryOp(x, y *tensor.Tensor, shaderName, shaderCode string) (*tensor.Tensor, error) {
	if !x.Shape().Equal(y.Shape()) {
		return nil, errors.Wrapf(tensor.ErrShape, "%s: %v vs %v", shaderName, x.Shape(), y.Shape())
	}
	if x.DType() != y.DType() {
		return nil, errors.Wrapf(tensor.ErrShape, "%s: dtype %s vs %s", shaderName, x.DType(), y.DType())
	}

	numElements := x.NumElements()
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(numElements))

	out, err := tensor.New(x.Shape(), x.DType())
	if err != nil {
		return nil, err
	}
	workgroups := uint32((numElements + workgroupSize - 1) / workgroupSize)
	err = b.dispatch(shaderName, shaderCode, params,
		[][]byte{x.Data(), y.Data()}, out.Data(), workgroups, 1)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// dispatch uploads the inputs, runs one compute pass, and reads the result
// back into dst. Input buffers bind at 0..n-1, the result at n, params at n+1.
func (b *Backend) dispatch(
	shaderName, shaderCode string,
	params []byte,
	inputs [][]byte,
	dst []byte,
	workgroupsX, workgroupsY uint32,
) error {
	shader := b.compileShader(shaderName, shaderCode)
	pipeline := b.getOrCreatePipeline(shaderName, shader)

	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	binding := uint32(0)
	for _, in := range inputs {
		buf := b.createBuffer(in, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		defer buf.Release()
		entries = append(entries, wgpu.BufferBindingEntry(binding, buf, 0, uint64(len(in))))
		binding++
	}

	resultSize := uint64(len(dst))
	bufferResult := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	defer bufferResult.Release()
	entries = append(entries, wgpu.BufferBindingEntry(binding, bufferResult, 0, resultSize))
	binding++

	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()
	entries = append(entries, wgpu.BufferBindingEntry(binding, bufferParams, 0, uint64(len(params))))

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(workgroupsX, workgroupsY, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	result, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return err
	}
	copy(dst, result)
	return nil
}

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one
// with auto layout.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data through
// MappedAtCreation.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer copies a storage buffer back to CPU memory through a staging
// buffer, since storage buffers cannot be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}
