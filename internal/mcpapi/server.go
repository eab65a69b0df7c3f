// Package mcpapi exposes the builder as an MCP tool ("convert_brush_pack")
// so an agent can request a .sut file be produced from inline brush
// images without going through the HTTP surface.
package mcpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/csp-tools/sutbuild/internal/idgen"
	"github.com/csp-tools/sutbuild/internal/normalize"
	"github.com/csp-tools/sutbuild/internal/settings"
	"github.com/csp-tools/sutbuild/internal/sutdb"
	"github.com/csp-tools/sutbuild/internal/sutdb/compose"
)

const serverName = "sutbuild"
const serverVersion = "1.0.0"

// brushImageArg is one entry of the tool's "images" array argument.
type brushImageArg struct {
	Name   string `json:"name"`
	PNGB64 string `json:"png_base64"`
}

// convertArgs is the JSON shape of convert_brush_pack's arguments.
type convertArgs struct {
	PackageName string          `json:"package_name"`
	AuthorName  string          `json:"author_name"`
	Images      []brushImageArg `json:"images"`
	Settings    json.RawMessage `json:"settings"`
}

// NewServer builds the MCP server and registers convert_brush_pack.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion)

	tool := mcp.NewTool("convert_brush_pack",
		mcp.WithDescription("Convert one or more brush-tip images into a Clip Studio Paint .sut file, returned as base64."),
		mcp.WithString("package_name", mcp.Required(), mcp.Description("Name of the sub tool package")),
		mcp.WithString("author_name", mcp.Description("Author name recorded in the package")),
		mcp.WithArray("images", mcp.Required(), mcp.Description("Brush-tip images, each an object with \"name\" and \"png_base64\"")),
		mcp.WithObject("settings", mcp.Description("Optional JSON object of brush options (size, opacity, hardness, spacing, angle, size_pressure, opacity_pressure)")),
	)

	s.AddTool(tool, handleConvert)
	return s
}

func handleConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	var args convertArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.PackageName == "" {
		return mcp.NewToolResultError("package_name is required"), nil
	}
	if len(args.Images) == 0 {
		return mcp.NewToolResultError("at least one image is required"), nil
	}

	opts := compose.DefaultOptions()
	if len(args.Settings) > 0 {
		decoded, err := settings.Decode(args.Settings)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid settings: %v", err)), nil
		}
		opts = decoded
	}

	brushes := make([]compose.BrushInput, 0, len(args.Images))
	for _, img := range args.Images {
		raw, err := base64.StdEncoding.DecodeString(img.PNGB64)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("image %q: invalid base64: %v", img.Name, err)), nil
		}
		normalized, err := normalize.Normalize(raw)
		if err != nil {
			continue
		}
		brushes = append(brushes, compose.BrushInput{
			Name:    img.Name,
			Width:   normalized.Width,
			Height:  normalized.Height,
			PNG:     normalized.PNG,
			Options: opts,
		})
	}
	if len(brushes) == 0 {
		return mcp.NewToolResultError("no usable images: every image failed to normalize"), nil
	}

	builder := sutdb.NewBuilder(idgen.NewSource())
	out, err := builder.Emit(sutdb.Package{
		Name:    args.PackageName,
		Author:  args.AuthorName,
		Brushes: brushes,
	}, time.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build failed: %v", err)), nil
	}

	return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(out)), nil
}
