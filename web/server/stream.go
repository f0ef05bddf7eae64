package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"

	"golang.org/x/net/websocket"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/renderer"
	"github.com/df07/go-rect-raytracer/pkg/scene"
)

type (
	// streamSetup is the first message of a stream session
	streamSetup struct {
		Scene        string `json:"scene"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		MaxLightRays *int   `json:"maxLightRays,omitempty"` // Scene default when absent
	}

	// streamUpdate requests a new frame, optionally from a new camera position
	streamUpdate struct {
		Frame    uint64      `json:"frame"`
		Position *[3]float64 `json:"position,omitempty"`
	}
)

// streamSession serves one live preview connection. The client sends a setup
// message, receives the first frame as a binary PNG, then gets one frame back
// for every update it sends.
func (s *Server) streamSession(ws *websocket.Conn) {
	addr := ws.Request().RemoteAddr
	renderID := fmt.Sprintf("stream-%d", s.renderSeq.Add(1))
	log.Printf("[%s] new connection: %s", renderID, addr)
	defer log.Printf("[%s] %s was disconnected", renderID, addr)

	var setup streamSetup
	if err := websocket.JSON.Receive(ws, &setup); err != nil {
		log.Printf("[%s] invalid setup: %v", renderID, err)
		return
	}

	req := &RenderRequest{Scene: setup.Scene, MaxLightRays: -1}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if setup.MaxLightRays != nil {
		req.MaxLightRays = *setup.MaxLightRays
	}
	if err := validateStreamSetup(setup); err != nil {
		sendStreamError(ws, renderID, err)
		return
	}
	req.Width, req.Height = setup.Width, setup.Height

	sceneObj, err := s.createScene(req)
	if err != nil {
		sendStreamError(ws, renderID, err)
		return
	}
	r := sceneObj.NewRenderer(renderer.DefaultRenderConfig(), NewWebLogger(renderID, log.Default()))

	if err := sendStreamFrame(ws, r, sceneObj); err != nil {
		log.Printf("[%s] %v", renderID, err)
		return
	}

	for {
		var update streamUpdate
		if err := websocket.JSON.Receive(ws, &update); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("[%s] %v", renderID, err)
			}
			return
		}

		sceneObj.Env.Frame = update.Frame
		if p := update.Position; p != nil {
			sceneObj.Camera.Position = core.NewVec3(p[0], p[1], p[2])
		}
		if err := sendStreamFrame(ws, r, sceneObj); err != nil {
			log.Printf("[%s] %v", renderID, err)
			return
		}
	}
}

func validateStreamSetup(setup streamSetup) error {
	if setup.Width < 0 || setup.Width > maxDimension || setup.Height < 0 || setup.Height > maxDimension {
		return fmt.Errorf("resolution must be at most %d (0 for the scene default), got %dx%d", maxDimension, setup.Width, setup.Height)
	}
	if setup.MaxLightRays != nil && (*setup.MaxLightRays < 0 || *setup.MaxLightRays > maxLightRaysCap) {
		return fmt.Errorf("maxLightRays must be between 0 and %d, got %d", maxLightRaysCap, *setup.MaxLightRays)
	}
	return nil
}

// sendStreamFrame renders the scene's current camera and sends it as a binary PNG frame
func sendStreamFrame(ws *websocket.Conn, r *renderer.Renderer, sceneObj *scene.Scene) error {
	cam := sceneObj.Camera
	img, err := r.Render(sceneObj.Env, sceneObj.Width, sceneObj.Height, cam.Position, cam.Right, cam.Down)
	if err != nil {
		return fmt.Errorf("render frame %d: %w", sceneObj.Env.Frame, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode frame %d: %w", sceneObj.Env.Frame, err)
	}
	if err := websocket.Message.Send(ws, buf.Bytes()); err != nil {
		return fmt.Errorf("send frame %d: %w", sceneObj.Env.Frame, err)
	}
	return nil
}

// sendStreamError reports a setup failure as a text frame before closing
func sendStreamError(ws *websocket.Conn, renderID string, err error) {
	log.Printf("[%s] %v", renderID, err)
	if sendErr := websocket.JSON.Send(ws, map[string]string{"error": err.Error()}); sendErr != nil {
		log.Printf("[%s] failed to send error: %v", renderID, sendErr)
	}
}
