// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glctx

// GL enum values, identical to the ones in the Khronos headers so that the
// native context can pass them straight through.
const (
	False Enum = 0
	True  Enum = 1

	Triangles Enum = 0x0004

	DepthBufferBit Enum = 0x00000100
	ColorBufferBit Enum = 0x00004000
	DepthTest      Enum = 0x0B71

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	Vendor                 Enum = 0x1F00
	Renderer               Enum = 0x1F01
	Version                Enum = 0x1F02
	Extensions             Enum = 0x1F03
	ShadingLanguageVersion Enum = 0x8B8C
	MajorVersion           Enum = 0x821B
	MinorVersion           Enum = 0x821C
	NumExtensions          Enum = 0x821D
)

// data types
const (
	Int          Enum = 0x1404
	UnsignedInt  Enum = 0x1405
	Float        Enum = 0x1406
	Double       Enum = 0x140A
	FloatVec2    Enum = 0x8B50
	FloatVec3    Enum = 0x8B51
	FloatVec4    Enum = 0x8B52
	IntVec2      Enum = 0x8B53
	IntVec3      Enum = 0x8B54
	IntVec4      Enum = 0x8B55
	Bool         Enum = 0x8B56
	BoolVec2     Enum = 0x8B57
	BoolVec3     Enum = 0x8B58
	BoolVec4     Enum = 0x8B59
	FloatMat2    Enum = 0x8B5A
	FloatMat3    Enum = 0x8B5B
	FloatMat4    Enum = 0x8B5C
	Sampler2D    Enum = 0x8B5E
	SamplerCube  Enum = 0x8B60
	UnsignedVec2 Enum = 0x8DC6
	UnsignedVec3 Enum = 0x8DC7
	UnsignedVec4 Enum = 0x8DC8
	DoubleMat2   Enum = 0x8F46
	DoubleMat3   Enum = 0x8F47
	DoubleMat4   Enum = 0x8F48
	DoubleVec2   Enum = 0x8FFC
	DoubleVec3   Enum = 0x8FFD
	DoubleVec4   Enum = 0x8FFE
)

// shader stages
const (
	FragmentShader       Enum = 0x8B30
	VertexShader         Enum = 0x8B31
	GeometryShader       Enum = 0x8DD9
	TessEvaluationShader Enum = 0x8E87
	TessControlShader    Enum = 0x8E88
	ComputeShader        Enum = 0x91B9
)

// debug output
const (
	DebugOutputSynchronous Enum = 0x8242
	DebugOutput            Enum = 0x92E0
	DontCare               Enum = 0x1100

	DebugSourceAPI            Enum = 0x8246
	DebugSourceWindowSystem   Enum = 0x8247
	DebugSourceShaderCompiler Enum = 0x8248
	DebugSourceThirdParty     Enum = 0x8249
	DebugSourceApplication    Enum = 0x824A
	DebugSourceOther          Enum = 0x824B

	DebugTypeError              Enum = 0x824C
	DebugTypeDeprecatedBehavior Enum = 0x824D
	DebugTypeUndefinedBehavior  Enum = 0x824E
	DebugTypePortability        Enum = 0x824F
	DebugTypePerformance        Enum = 0x8250
	DebugTypeOther              Enum = 0x8251
	DebugTypeMarker             Enum = 0x8268
	DebugTypePushGroup          Enum = 0x8269
	DebugTypePopGroup           Enum = 0x826A

	DebugSeverityNotification Enum = 0x826B
	DebugSeverityHigh         Enum = 0x9146
	DebugSeverityMedium       Enum = 0x9147
	DebugSeverityLow          Enum = 0x9148
)
