package recording

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Resource commands
	CmdCreateTexture CommandType = iota // Create a texture
	CmdCreateTarget                     // Create a render target
	CmdCreateMesh                       // Create a mesh
	CmdCreateShader                     // Compile a shader

	// Frame commands
	CmdClear  // Clear a target
	CmdRender // Perform a draw call
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateTexture: "CreateTexture",
	CmdCreateTarget:  "CreateTarget",
	CmdCreateMesh:    "CreateMesh",
	CmdCreateShader:  "CreateShader",
	CmdClear:         "Clear",
	CmdRender:        "Render",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// MaterialRef is a reference to a material snapshot in the resource pool.
type MaterialRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a material.
func (r MaterialRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// CreateTextureCmd records a texture creation.
type CreateTextureCmd struct {
	Width, Height int
	Format        gputypes.TextureFormat
	Texture       render.Texture
}

// Type implements Command.
func (CreateTextureCmd) Type() CommandType { return CmdCreateTexture }

// CreateTargetCmd records a render target creation.
type CreateTargetCmd struct {
	Width, Height int
	Target        render.Target
}

// Type implements Command.
func (CreateTargetCmd) Type() CommandType { return CmdCreateTarget }

// CreateMeshCmd records a mesh creation.
type CreateMeshCmd struct {
	Mesh render.Mesh
}

// Type implements Command.
func (CreateMeshCmd) Type() CommandType { return CmdCreateMesh }

// CreateShaderCmd records a shader compilation.
type CreateShaderCmd struct {
	Label  string
	Shader render.Shader
}

// Type implements Command.
func (CreateShaderCmd) Type() CommandType { return CmdCreateShader }

// ClearCmd records a target clear.
type ClearCmd struct {
	Target  render.Target
	Color   sprite.Color
	Depth   float32
	Stencil uint8
}

// Type implements Command.
func (ClearCmd) Type() CommandType { return CmdClear }

// RenderCmd records one draw call after Perform's clamping. Call.Material
// is the live material; Material refers to its state at draw time.
type RenderCmd struct {
	Call     render.DrawCall
	Material MaterialRef
}

// Type implements Command.
func (RenderCmd) Type() CommandType { return CmdRender }
