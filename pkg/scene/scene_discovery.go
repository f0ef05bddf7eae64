package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-rect-raytracer/pkg/loaders"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by NewScene
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

var builtInSceneInfos = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Reflective red panel, green panel behind it and a blue panel behind the camera",
	},
	{
		ID:          "white-wall",
		Name:        "White Wall",
		Description: "A single white emitter on black",
	},
	{
		ID:          "hall-of-mirrors",
		Name:        "Hall of Mirrors",
		Description: "Checkered wall between two facing mirrors",
	},
	{
		ID:          "stained-glass",
		Name:        "Stained Glass",
		Description: "Tinted transparent panes in front of a white light",
	},
}

// ListBuiltInScenes returns metadata for the scenes NewScene can build by name
func ListBuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInSceneInfos))
	for i, info := range builtInSceneInfos {
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = "builtin"
		scenes[i] = info
	}
	return scenes
}

// ListSceneFiles scans the scenes directory and returns discovered JSON scenes
func ListSceneFiles() ([]SceneInfo, error) {
	// Try different possible paths for scenes directory
	possiblePaths := []string{"scenes", "../scenes"}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return ListSceneFilesIn(path)
		}
	}

	// No scenes directory found
	return []SceneInfo{}, nil
}

// ListSceneFilesIn returns the JSON scenes in dir, sorted by display name.
// Files that fail to load are skipped.
func ListSceneFilesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ReadSceneFileInfo(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to read scene %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ReadSceneFileInfo extracts metadata from a JSON scene file, falling back to
// the file name for the display name
func ReadSceneFileInfo(filePath string) (SceneInfo, error) {
	sf, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return SceneInfo{}, err
	}

	info := SceneInfo{
		ID:          filePath,
		Name:        sf.Name,
		Description: sf.Description,
		Group:       sf.Group,
		Type:        "file",
		FilePath:    filePath,
	}
	if info.Name == "" {
		info.Name = titleCase(sceneFileID(filePath))
	}
	if info.Group == "" {
		info.Group = "Scene Files"
	}
	info.DisplayName = info.Name

	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	files, err := ListSceneFiles()
	if err != nil {
		return ScenesResponse{}, fmt.Errorf("failed to list scene files: %w", err)
	}
	return groupScenes(append(ListBuiltInScenes(), files...)), nil
}

// groupScenes groups scenes by their Group field, built-in first and the rest
// alphabetically
func groupScenes(allScenes []SceneInfo) ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtInGroup,
			Scenes: builtIn,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "hall-of-mirrors" -> "Hall Of Mirrors"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
