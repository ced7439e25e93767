package checklist

import (
	"fmt"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
	"github.com/xiaolushuo/verify-project/internal/probe"
)

// ProjectFile is the Godot project configuration every checked tree must have.
const ProjectFile = "project.godot"

// AssetMinSize is the byte size at or below which an asset is treated as a
// placeholder (100 bytes).
const AssetMinSize = 100

// Routine names, in execution order.
const (
	RoutineDirectories  = "directory_structure"
	RoutineProjectFile  = "project_config"
	RoutineSourceFiles  = "source_files"
	RoutineAssetFiles   = "asset_files"
	RoutineBuildFiles   = "build_files"
	RoutineSourceSyntax = "source_syntax"
)

const (
	mainScript        = "src/Main.cs"
	shuttlecockScript = "src/Shuttlecock.cs"
)

// RequireProject verifies the invocation precondition: the project file must
// exist under the probe's root.
func RequireProject(p probe.Probe) error {
	if p.Exists(ProjectFile) {
		return nil
	}
	return perrors.New(perrors.ErrCodeProjectNotFound,
		fmt.Sprintf("%s not found in the current directory", ProjectFile), nil).
		WithSuggestion("Run verify-project from the project root directory")
}

// DefaultRoutines returns the checklist for the Desktop Badminton Game,
// in the order the runner executes it.
func DefaultRoutines() []Routine {
	return []Routine{
		{
			Name:   RoutineDirectories,
			Title:  "Directory Structure",
			Verify: VerifyDirectory,
			Artifacts: []ArtifactSpec{
				{Path: "src", Description: "Source directory", Kind: KindDirectory},
				{Path: "scenes", Description: "Scene directory", Kind: KindDirectory},
				{Path: "objects", Description: "Game object directory", Kind: KindDirectory},
				{Path: "assets", Description: "Asset directory", Kind: KindDirectory},
			},
		},
		{
			Name:   RoutineProjectFile,
			Title:  "Godot Project Configuration",
			Verify: VerifyMarkers,
			Artifacts: []ArtifactSpec{
				{Path: ProjectFile, Description: "Project configuration file"},
			},
			Markers: projectMarkers(),
		},
		{
			Name:   RoutineSourceFiles,
			Title:  "Source Files",
			Verify: VerifyExists,
			Artifacts: []ArtifactSpec{
				{Path: mainScript, Description: "Main scene script"},
				{Path: shuttlecockScript, Description: "Shuttlecock script"},
				{Path: "scenes/Main.tscn", Description: "Main scene"},
				{Path: "objects/Shuttlecock.tscn", Description: "Shuttlecock object scene"},
			},
		},
		{
			Name:   RoutineAssetFiles,
			Title:  "Asset Files",
			Verify: VerifySize,
			Artifacts: []ArtifactSpec{
				{Path: "assets/icon.png", Description: "Application icon", MinSize: AssetMinSize},
				{Path: "assets/shuttlecock_body.png", Description: "Shuttlecock body texture", MinSize: AssetMinSize},
				{Path: "assets/shuttlecock_feathers.png", Description: "Shuttlecock feather texture", MinSize: AssetMinSize},
				{Path: "assets/trail.png", Description: "Trail texture", MinSize: AssetMinSize},
			},
		},
		{
			Name:   RoutineBuildFiles,
			Title:  "Build Files",
			Verify: VerifyExists,
			Artifacts: []ArtifactSpec{
				{Path: "export_presets.cfg", Description: "Export presets"},
				{Path: "build.bat", Description: "Windows build script"},
				{Path: "README.md", Description: "Project README"},
				{Path: "test_config.gd", Description: "Test configuration"},
			},
		},
		{
			Name:   RoutineSourceSyntax,
			Title:  "Source Syntax",
			Verify: VerifySource,
			Artifacts: []ArtifactSpec{
				{Path: mainScript, Description: "Main scene script"},
				{Path: shuttlecockScript, Description: "Shuttlecock script"},
			},
			Markers: append(sourceMarkers(mainScript), sourceMarkers(shuttlecockScript)...),
		},
	}
}

// projectMarkers lists the project.godot lines the desktop overlay window
// depends on.
func projectMarkers() []ConfigMarker {
	lines := []string{
		`config/name="Desktop Badminton Game"`,
		`run/main_scene="res://scenes/Main.tscn"`,
		`window/size/borderless=true`,
		`window/size/always_on_top=true`,
		`window/size/transparent=true`,
		`window/per_pixel_transparency/allowed=true`,
	}

	markers := make([]ConfigMarker, len(lines))
	for i, line := range lines {
		markers[i] = ConfigMarker{FilePath: ProjectFile, Text: line, Description: "Config entry"}
	}
	return markers
}

func sourceMarkers(path string) []ConfigMarker {
	return []ConfigMarker{
		{FilePath: path, Text: "using Godot;", Description: "Godot import"},
		{FilePath: path, Text: "public partial class", Description: "Class declaration"},
	}
}
