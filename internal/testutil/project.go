// Package testutil builds Desktop Badminton Game project trees for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// ProjectGodot is a project.godot containing every required entry.
const ProjectGodot = `; Engine configuration file.
config_version=5

[application]

config/name="Desktop Badminton Game"
run/main_scene="res://scenes/Main.tscn"
config/features=PackedStringArray("4.3", "C#", "Forward Plus")
config/icon="res://assets/icon.png"

[display]

window/size/viewport_width=1920
window/size/viewport_height=1080
window/size/borderless=true
window/size/always_on_top=true
window/size/transparent=true
window/per_pixel_transparency/allowed=true

[dotnet]

project/assembly_name="DesktopBadmintonGame"
`

// MainScript is a src/Main.cs that satisfies every syntax heuristic.
const MainScript = `using Godot;
using System;

namespace DesktopBadmintonGame;

public partial class Main : Node2D
{
    private PackedScene _shuttlecockScene;

    public override void _Ready()
    {
        _shuttlecockScene = ResourceLoader.Load<PackedScene>("res://objects/Shuttlecock.tscn");
    }
}
`

// ShuttlecockScript is a src/Shuttlecock.cs that satisfies every syntax heuristic.
const ShuttlecockScript = `using Godot;

namespace DesktopBadmintonGame;

public partial class Shuttlecock : RigidBody2D
{
    [Export] public float Gravity = 980.0f;

    public override void _PhysicsProcess(double delta)
    {
        if (Position.Y > 1080)
        {
            QueueFree();
        }
    }
}
`

// AssetPaths lists the binary assets a complete project carries.
var AssetPaths = []string{
	"assets/icon.png",
	"assets/shuttlecock_body.png",
	"assets/shuttlecock_feathers.png",
	"assets/trail.png",
}

// NewProject creates a complete, passing project tree in a temp dir and
// returns its root.
func NewProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	for _, dir := range []string{"src", "scenes", "objects", "assets"} {
		Mkdir(t, root, dir)
	}

	WriteFile(t, root, "project.godot", ProjectGodot)
	WriteFile(t, root, "src/Main.cs", MainScript)
	WriteFile(t, root, "src/Shuttlecock.cs", ShuttlecockScript)
	WriteFile(t, root, "scenes/Main.tscn", "[gd_scene format=3]\n")
	WriteFile(t, root, "objects/Shuttlecock.tscn", "[gd_scene format=3]\n")
	WriteFile(t, root, "export_presets.cfg", "[preset.0]\nname=\"Windows Desktop\"\n")
	WriteFile(t, root, "build.bat", "@echo off\ngodot --headless --export-release \"Windows Desktop\"\n")
	WriteFile(t, root, "README.md", "# Desktop Badminton Game\n")
	WriteFile(t, root, "test_config.gd", "extends Node\n")

	for _, asset := range AssetPaths {
		WriteSized(t, root, asset, 512)
	}

	return root
}

// NewBareProject creates a temp dir holding only project.godot with content.
func NewBareProject(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	WriteFile(t, root, "project.godot", content)
	return root
}

// WriteFile writes content to rel under root, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	write(t, root, rel, []byte(content))
}

// WriteSized writes a file of exactly size bytes to rel under root.
func WriteSized(t *testing.T, root, rel string, size int) {
	t.Helper()
	write(t, root, rel, bytes.Repeat([]byte{0x89}, size))
}

// Mkdir creates rel under root.
func Mkdir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
}

// Remove deletes rel (file or directory tree) under root.
func Remove(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.RemoveAll(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("remove %s: %v", rel, err)
	}
}

func write(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
