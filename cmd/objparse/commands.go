package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/objparse/internal/config"
	"github.com/taigrr/objparse/internal/logger"
	"github.com/taigrr/objparse/pkg/models"
)

// app is the state shared by every subcommand once the root pre-run has
// resolved configuration.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "objparse",
		Short: "Wavefront OBJ/MTL inspector and converter",
		Long: `objparse - Wavefront OBJ/MTL inspector and converter

Parses OBJ geometry (v, vt, vn, triangle and quad faces) into an indexed
triangle mesh and MTL files into a material record, then reports on them or
writes them out as glTF or STL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFile, "log-file", "", "Also write logs to this file")

	root.AddCommand(a.infoCmd(), a.mtlCmd(), a.convertCmd(), a.configCmd())
	return root
}

// setup loads configuration (defaults < file < flags) and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Logging.LogFile = a.logFile
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	return nil
}

// loadMesh loads an OBJ file with the configured options and applies the
// configured post-processing.
func (a *app) loadMesh(path string) (*models.Mesh, error) {
	loader := a.cfg.OBJLoader()
	loader.Logger = a.log

	mesh, err := loader.LoadFile(path, nil)
	if err != nil {
		return nil, err
	}

	if a.cfg.Parse.RemoveDegenerate {
		removed := mesh.RemoveDegenerateTriangles()
		a.log.Debug("removed degenerate triangles", zap.String("source", path), zap.Int("removed", removed))
	}
	if a.cfg.Parse.Dedupe {
		removed := mesh.DeduplicateVertices(a.cfg.Parse.DedupeEpsilon)
		a.log.Debug("deduplicated vertices", zap.String("source", path), zap.Int("removed", removed))
	}
	if a.cfg.Parse.SmoothNormals {
		mesh.CalculateSmoothNormals()
	}
	return mesh, nil
}

func (a *app) loadMaterial(path string) (*models.Material, error) {
	loader := a.cfg.MTLLoader()
	loader.Logger = a.log
	return loader.LoadFile(path)
}

func (a *app) infoCmd() *cobra.Command {
	var rhs bool

	cmd := &cobra.Command{
		Use:   "info <model.obj>",
		Short: "Display model information",
		Long:  "Display vertex count, triangle count, bounding box and material libraries of an OBJ file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("rhs") {
				a.cfg.Parse.ConvertToRHS = rhs
			}
			return a.runInfo(cmd, args[0])
		},
	}
	cmd.Flags().BoolVar(&rhs, "rhs", false, "Convert to the Z-up axis convention before reporting")
	return cmd
}

func (a *app) runInfo(cmd *cobra.Command, modelPath string) error {
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	mesh, err := a.loadMesh(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	b := mesh.Bounds
	size := mesh.Size()
	center := mesh.Center()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", filepath.Base(modelPath))
	fmt.Fprintf(out, "Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Vertices:   %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "Triangles:  %d\n", mesh.TriangleCount())
	fmt.Fprintln(out)
	if b.Valid {
		fmt.Fprintf(out, "Bounds Min: (%.3f, %.3f, %.3f)\n", b.Min.X, b.Min.Y, b.Min.Z)
		fmt.Fprintf(out, "Bounds Max: (%.3f, %.3f, %.3f)\n", b.Max.X, b.Max.Y, b.Max.Z)
		fmt.Fprintf(out, "Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
		fmt.Fprintf(out, "Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
	} else {
		fmt.Fprintln(out, "Bounds:     empty")
	}

	if len(mesh.MaterialLibs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Materials:  %s\n", strings.Join(mesh.MaterialLibs, ", "))
	}
	return nil
}

func (a *app) mtlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mtl <material.mtl>",
		Short: "Display material information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mat, err := a.loadMaterial(args[0])
			if err != nil {
				return fmt.Errorf("load material: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Material:   %s\n", mat.Name)
			fmt.Fprintf(out, "Roughness:  %g\n", mat.Roughness)
			fmt.Fprintf(out, "IOR:        %g\n", mat.IndexOfRefraction)
			if mat.HasTexture() {
				fmt.Fprintf(out, "Texture:    %s\n", mat.DiffuseTexture)
			} else {
				fmt.Fprintln(out, "Texture:    none")
			}
			return nil
		},
	}
}

func (a *app) convertCmd() *cobra.Command {
	var (
		mtlPath string
		rhs     bool
		dedupe  bool
		smooth  bool
		clean   bool
	)

	cmd := &cobra.Command{
		Use:   "convert <model.obj> <out.glb|out.gltf|out.stl>",
		Short: "Convert an OBJ model to glTF or STL",
		Long: `Convert an OBJ model to binary glTF (.glb), JSON glTF (.gltf) or binary STL (.stl).

For glTF output the material comes from --mtl, or else from the first mtllib
named by the model, resolved relative to the model's directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("rhs") {
				a.cfg.Parse.ConvertToRHS = rhs
			}
			if f.Changed("dedupe") {
				a.cfg.Parse.Dedupe = dedupe
			}
			if f.Changed("smooth") {
				a.cfg.Parse.SmoothNormals = smooth
			}
			if f.Changed("clean") {
				a.cfg.Parse.RemoveDegenerate = clean
			}
			return a.runConvert(cmd, args[0], args[1], mtlPath)
		},
	}

	cmd.Flags().StringVar(&mtlPath, "mtl", "", "Material file to attach (glTF output only)")
	cmd.Flags().BoolVar(&rhs, "rhs", false, "Convert to the Z-up axis convention")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Merge identical vertices after parsing")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "Replace normals with smooth per-position normals")
	cmd.Flags().BoolVar(&clean, "clean", false, "Drop triangles with repeated corners or zero area")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, inPath, outPath, mtlPath string) error {
	mesh, err := a.loadMesh(inPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".glb", ".gltf":
		if mtlPath == "" && len(mesh.MaterialLibs) > 0 {
			mtlPath = filepath.Join(filepath.Dir(inPath), mesh.MaterialLibs[0])
		}
		var mat *models.Material
		if mtlPath != "" {
			if mat, err = a.loadMaterial(mtlPath); err != nil {
				return fmt.Errorf("load material: %w", err)
			}
		}
		err = models.WriteGLTF(outPath, mesh, mat)
	case ".stl":
		err = models.WriteSTLFile(outPath, mesh)
	default:
		return fmt.Errorf("unsupported output format: %s (use .glb, .gltf, or .stl)", ext)
	}
	if err != nil {
		return err
	}

	a.log.Info("converted model",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d vertices, %d triangles)\n",
		outPath, mesh.VertexCount(), mesh.TriangleCount())
	return nil
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the effective configuration as YAML",
		Long: `Write the effective configuration (defaults, config file and logging flags)
to path, or to config.yaml in the user config directory when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.ConfigDir(), "config.yaml")
			if len(args) == 1 {
				path = args[0]
			}
			if err := a.cfg.SaveTo(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
