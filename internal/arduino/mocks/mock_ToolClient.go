// Package mocks holds a hand-written testify mock of arduino.ToolClient with
// a mockery-style typed EXPECT() recorder.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/boardci/internal/platform"
	"github.com/thoreinstein/boardci/internal/runner"
)

// MockToolClient is a mock type for the ToolClient type
type MockToolClient struct {
	mock.Mock
}

type MockToolClient_Expecter struct {
	mock *mock.Mock
}

func (_m *MockToolClient) EXPECT() *MockToolClient_Expecter {
	return &MockToolClient_Expecter{mock: &_m.Mock}
}

func resultAndError(ret mock.Arguments) (*runner.Result, error) {
	var r0 *runner.Result
	if v := ret.Get(0); v != nil {
		r0 = v.(*runner.Result)
	}
	return r0, ret.Error(1)
}

// UpdateIndex provides a mock function with given fields: ctx
func (_m *MockToolClient) UpdateIndex(ctx context.Context) (*runner.Result, error) {
	ret := _m.Called(ctx)
	if len(ret) == 0 {
		panic("no return value specified for UpdateIndex")
	}
	return resultAndError(ret)
}

// MockToolClient_UpdateIndex_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateIndex'
type MockToolClient_UpdateIndex_Call struct {
	*mock.Call
}

// UpdateIndex is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockToolClient_Expecter) UpdateIndex(ctx interface{}) *MockToolClient_UpdateIndex_Call {
	return &MockToolClient_UpdateIndex_Call{Call: _e.mock.On("UpdateIndex", ctx)}
}

func (_c *MockToolClient_UpdateIndex_Call) Return(_a0 *runner.Result, _a1 error) *MockToolClient_UpdateIndex_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockToolClient_UpdateIndex_Call) Once() *MockToolClient_UpdateIndex_Call {
	_c.Call.Once()
	return _c
}

func (_c *MockToolClient_UpdateIndex_Call) Times(n int) *MockToolClient_UpdateIndex_Call {
	_c.Call.Times(n)
	return _c
}

// InstallPlatform provides a mock function with given fields: ctx, pkg
func (_m *MockToolClient) InstallPlatform(ctx context.Context, pkg string) (*runner.Result, error) {
	ret := _m.Called(ctx, pkg)
	if len(ret) == 0 {
		panic("no return value specified for InstallPlatform")
	}
	return resultAndError(ret)
}

// MockToolClient_InstallPlatform_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'InstallPlatform'
type MockToolClient_InstallPlatform_Call struct {
	*mock.Call
}

// InstallPlatform is a helper method to define mock.On call
//   - ctx context.Context
//   - pkg string
func (_e *MockToolClient_Expecter) InstallPlatform(ctx interface{}, pkg interface{}) *MockToolClient_InstallPlatform_Call {
	return &MockToolClient_InstallPlatform_Call{Call: _e.mock.On("InstallPlatform", ctx, pkg)}
}

func (_c *MockToolClient_InstallPlatform_Call) Return(_a0 *runner.Result, _a1 error) *MockToolClient_InstallPlatform_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockToolClient_InstallPlatform_Call) Once() *MockToolClient_InstallPlatform_Call {
	_c.Call.Once()
	return _c
}

// InstallLibrary provides a mock function with given fields: ctx, spec
func (_m *MockToolClient) InstallLibrary(ctx context.Context, spec string) (*runner.Result, error) {
	ret := _m.Called(ctx, spec)
	if len(ret) == 0 {
		panic("no return value specified for InstallLibrary")
	}
	return resultAndError(ret)
}

// MockToolClient_InstallLibrary_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'InstallLibrary'
type MockToolClient_InstallLibrary_Call struct {
	*mock.Call
}

// InstallLibrary is a helper method to define mock.On call
//   - ctx context.Context
//   - spec string
func (_e *MockToolClient_Expecter) InstallLibrary(ctx interface{}, spec interface{}) *MockToolClient_InstallLibrary_Call {
	return &MockToolClient_InstallLibrary_Call{Call: _e.mock.On("InstallLibrary", ctx, spec)}
}

func (_c *MockToolClient_InstallLibrary_Call) Return(_a0 *runner.Result, _a1 error) *MockToolClient_InstallLibrary_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockToolClient_InstallLibrary_Call) Once() *MockToolClient_InstallLibrary_Call {
	_c.Call.Once()
	return _c
}

// CompileSketch provides a mock function with given fields: ctx, fqbn, dir
func (_m *MockToolClient) CompileSketch(ctx context.Context, fqbn platform.FQBN, dir string) (*runner.Result, error) {
	ret := _m.Called(ctx, fqbn, dir)
	if len(ret) == 0 {
		panic("no return value specified for CompileSketch")
	}
	return resultAndError(ret)
}

// MockToolClient_CompileSketch_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CompileSketch'
type MockToolClient_CompileSketch_Call struct {
	*mock.Call
}

// CompileSketch is a helper method to define mock.On call
//   - ctx context.Context
//   - fqbn platform.FQBN
//   - dir string
func (_e *MockToolClient_Expecter) CompileSketch(ctx interface{}, fqbn interface{}, dir interface{}) *MockToolClient_CompileSketch_Call {
	return &MockToolClient_CompileSketch_Call{Call: _e.mock.On("CompileSketch", ctx, fqbn, dir)}
}

func (_c *MockToolClient_CompileSketch_Call) Return(_a0 *runner.Result, _a1 error) *MockToolClient_CompileSketch_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockToolClient_CompileSketch_Call) Once() *MockToolClient_CompileSketch_Call {
	_c.Call.Once()
	return _c
}

// NewMockToolClient creates a new instance of MockToolClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockToolClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockToolClient {
	mock := &MockToolClient{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
