package recording

import "testing"

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		typ  CommandType
		want string
	}{
		{CmdCreateTexture, "CreateTexture"},
		{CmdCreateTarget, "CreateTarget"},
		{CmdCreateMesh, "CreateMesh"},
		{CmdCreateShader, "CreateShader"},
		{CmdClear, "Clear"},
		{CmdRender, "Render"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestCommandTypes(t *testing.T) {
	cmds := []struct {
		cmd  Command
		want CommandType
	}{
		{CreateTextureCmd{}, CmdCreateTexture},
		{CreateTargetCmd{}, CmdCreateTarget},
		{CreateMeshCmd{}, CmdCreateMesh},
		{CreateShaderCmd{}, CmdCreateShader},
		{ClearCmd{}, CmdClear},
		{RenderCmd{}, CmdRender},
	}
	for _, tt := range cmds {
		if got := tt.cmd.Type(); got != tt.want {
			t.Errorf("%T.Type() = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestMaterialRefValid(t *testing.T) {
	if MaterialRef(InvalidRef).IsValid() {
		t.Error("InvalidRef.IsValid() = true")
	}
	if !MaterialRef(0).IsValid() {
		t.Error("MaterialRef(0).IsValid() = false")
	}
}
