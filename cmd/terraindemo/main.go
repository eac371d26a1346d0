// Package main is a demo CLI for the adaptive terrain skeleton: it seeds an
// icosahedron, runs a configurable number of subdivision passes against a
// moving observer, and writes the resulting leaf triangulation to disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terraskel/internal/config"
	"github.com/Faultbox/terraskel/internal/logger"
	"github.com/Faultbox/terraskel/internal/terrain/debugmesh"
	"github.com/Faultbox/terraskel/internal/terrain/mesh"
	"github.com/Faultbox/terraskel/internal/terrain/skel"
	"github.com/Faultbox/terraskel/internal/terrain/subdiv"
	"github.com/Faultbox/terraskel/pkg/fixedmath"
	"github.com/Faultbox/terraskel/pkg/icosahedron"
	gomath "github.com/Faultbox/terraskel/pkg/math"
)

var (
	flagFrames = flag.Int("frames", 1, "Number of subdivision passes to run")
	flagOut    = flag.String("out", "terrain.obj", "Path to write the leaf triangulation as a .obj snapshot")
	flagAlt    = flag.Float64("altitude", 0, "Observer altitude above the surface, in meters, on the +Y axis")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== terrain skeleton demo ===")
	logger.Sugar.Debugf("config: %+v", cfg.Terrain)

	tr := mesh.New(mesh.Config{
		LevelMax:                   cfg.Terrain.LevelMax,
		Scale:                      cfg.Terrain.Scale,
		MaxRadius:                  cfg.Terrain.MaxRadius,
		Height:                     cfg.Terrain.Height,
		IcoTowerOverHorizonVsLevel: cfg.Terrain.IcoTowerOverHorizonVsLevel,
	})

	roots := icosahedron.Seed(tr, cfg.Terrain.MaxRadius)
	logger.Sugar.Infof("seeded icosahedron: %d root triangles", len(roots))

	subdivThresholds, unsubdivThresholds := cfg.Terrain.FixedThresholds()
	sp := subdiv.NewScratchpad(cfg.Terrain.LevelMax, subdivThresholds, unsubdivThresholds)
	sp.GrowToCapacity(tr.Skel.TriCapacity())
	sp.OnSubdivide = onSubdivideProjectToSphere

	driver := subdiv.NewDriver(tr, sp, roots)

	observer := fixedmath.FromVec3Scaled(
		gomath.Vec3{X: 0, Y: cfg.Terrain.MaxRadius + float32(*flagAlt), Z: 0},
		cfg.Terrain.Scale,
	)

	for frame := 0; frame < *flagFrames; frame++ {
		driver.RunPass(observer)
		logger.Sugar.Infof("frame %d: distanceCheckCount=%d leaves=%d",
			frame, sp.DistanceCheckCount, len(debugmesh.LeafTriangles(tr)))
	}

	f, err := os.Create(*flagOut)
	if err != nil {
		logger.Error("failed to create output file", zap.Error(err))
		os.Exit(1)
	}
	defer f.Close()

	if err := debugmesh.WriteOBJ(f, tr); err != nil {
		logger.Error("failed to write obj", zap.Error(err))
		os.Exit(1)
	}

	logger.Sugar.Infof("wrote %s", *flagOut)
}

// onSubdivideProjectToSphere places new midpoint vertices on the sphere
// defined by the terrain's radius (rather than at the flat edge midpoint),
// so repeated subdivision converges on a sphere instead of flattening each
// face into a facet of the original icosahedron.
func onSubdivideProjectToSphere(parent skel.TriID, group skel.GroupID, corners [3]skel.VertexID, midpoints [3]skel.MaybeNewVertex, tr *mesh.Terrain) {
	radius := tr.Config.MaxRadius
	for i, mp := range midpoints {
		if !mp.IsNew {
			continue
		}
		a, b := corners[i], corners[(i+1)%3]
		dir := tr.Normals[a].Add(tr.Normals[b]).Normalize()
		tr.Normals[mp.ID] = dir
		tr.Positions[mp.ID] = fixedmath.FromVec3Scaled(dir.Scale(radius), tr.Config.Scale)
	}
	tr.CalcSphereTriCenter(group)
}
