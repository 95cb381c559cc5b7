// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BoneVertexShader is the vertex shader for bone quad rendering.
//
//go:embed bone.vert
var BoneVertexShader string

// BoneFragmentShader is the fragment shader for bone quad rendering.
//
//go:embed bone.frag
var BoneFragmentShader string
