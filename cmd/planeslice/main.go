package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/egarza1996/fieldtrip/internal/models"
	"github.com/egarza1996/fieldtrip/pkg/config"
	"github.com/egarza1996/fieldtrip/pkg/interpolation"
	"github.com/egarza1996/fieldtrip/pkg/mesh"
	"github.com/egarza1996/fieldtrip/pkg/render"
	"github.com/egarza1996/fieldtrip/pkg/slicer"
	"github.com/egarza1996/fieldtrip/pkg/volio"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "Volume file (.raw.gz, little-endian float64)")
	dimsSpec := flag.String("dims", "", "Volume dimensions, e.g. 181x217x181")
	transformFile := flag.String("transform", "", "Voxel-to-world affine file (16 values, row-major)")
	configFile := flag.String("config", "planeslice.yaml", "Configuration file")
	orientation := flag.String("orientation", "", "Plane normal as x,y,z (default: 0,0,1)")
	location := flag.String("location", "", "Plane location as x,y,z (default: volume center or origin)")
	unit := flag.String("unit", "", "World-space unit: m, cm or mm (default: inferred)")
	resolution := flag.Float64("resolution", 0, "In-plane sample spacing (default: 1 mm)")
	method := flag.String("method", "", "Interpolation method: nearest, linear or cubic")
	maskFile := flag.String("mask", "", "Optional opacity mask volume (.raw.gz, same grid)")
	backgroundFile := flag.String("background", "", "Optional background volume (.raw.gz, same grid)")
	maskStyle := flag.String("mask-style", "", "Mask blending: opacity or colormix")
	meshFile := flag.String("mesh", "", "Optional surface mesh to outline (binary STL)")
	outputName := flag.String("output", "slice.jpg", "Output JPEG filename")
	sweep := flag.Int("sweep", 1, "Number of parallel slices to render")
	step := flag.Float64("step", 0, "Spacing between swept slices along the normal (default: resolution)")
	flag.Parse()

	// Validate inputs
	if *inputFile == "" || *dimsSpec == "" {
		flag.Usage()
		log.Fatal("both -input and -dims are required")
	}

	// Load configuration; flags override config values
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlagOverrides(cfg, *orientation, *location, *unit, *resolution, *method, *maskStyle)

	fmt.Println("================================")
	fmt.Println("OBLIQUE SLICE RENDERER FOR VOLUMETRIC NEUROIMAGING DATA")
	fmt.Println("================================")

	// Load the volume and its companions
	dims, err := volio.ParseDims(*dimsSpec)
	if err != nil {
		log.Fatalf("Invalid dimensions: %v", err)
	}

	vol, err := volio.LoadVolume(*inputFile, dims)
	if err != nil {
		log.Fatalf("Failed to load volume: %v", err)
	}
	if cfg.Output.Verbose {
		fmt.Printf("Loaded volume %s (%v, %d channels)\n", *inputFile, vol.Dims, vol.Channels())
	}

	in := slicer.Input{Volume: vol}
	if *transformFile != "" {
		if in.Transform, err = volio.LoadTransform(*transformFile); err != nil {
			log.Fatalf("Failed to load transform: %v", err)
		}
	}
	if cfg.Slice.Unit != "" {
		if in.Unit, err = slicer.ParseUnit(cfg.Slice.Unit); err != nil {
			log.Fatalf("Invalid unit: %v", err)
		}
	}

	opts, err := sliceOptions(cfg, *maskFile, *backgroundFile, dims)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Validate the mask style up front so a typo fails before sampling
	style, err := render.ParseMaskStyle(cfg.Render.MaskStyle)
	if err != nil {
		log.Fatalf("Invalid mask style: %v", err)
	}

	renderer, err := render.NewRenderer(render.Options{
		MaskStyle: style,
		Colormap:  cfg.Render.Colormap,
		Scale:     cfg.Render.Scale,
		Quality:   cfg.Render.JPEGQuality,
	})
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	var surface *models.TriMesh
	if *meshFile != "" {
		if surface, err = mesh.LoadSTL(*meshFile); err != nil {
			log.Fatalf("Failed to load mesh: %v", err)
		}
		if cfg.Output.Verbose {
			fmt.Printf("Loaded surface mesh %s (%d vertices, %d faces)\n",
				*meshFile, len(surface.Vertices), len(surface.Faces))
		}
	}

	sampler := slicer.NewSampler()
	rendered := 0
	for n := 0; n < *sweep; n++ {
		sliceOpts := opts
		if n > 0 {
			sliceOpts.Location = sweptLocation(opts, n, *step)
		}

		result, err := sampler.Slice(in, sliceOpts)
		if err != nil {
			log.Fatalf("Slicing failed: %v", err)
		}
		if result.Empty() {
			fmt.Printf("Slice %d misses the volume, skipping\n", n)
			continue
		}

		var segments []mesh.Segment
		if surface != nil {
			g := result.Geometry
			segments, err = mesh.IntersectPlane(surface,
				g.Location,
				g.Location.Add(g.BasisX),
				g.Location.Add(g.BasisY))
			if err != nil {
				log.Fatalf("Mesh intersection failed: %v", err)
			}
		}

		img, err := renderer.Render(result, segments)
		if err != nil {
			log.Fatalf("Rendering failed: %v", err)
		}

		output := *outputName
		if *sweep > 1 {
			output = numberedOutput(output, n)
		}
		if err := renderer.SaveJPEG(img, output); err != nil {
			log.Fatalf("Failed to save %s: %v", output, err)
		}

		if cfg.Output.Verbose {
			fmt.Printf("Rendered %dx%d slice (%s, resolution %g %s) to %s\n",
				result.Values.NX, result.Values.NY,
				result.Geometry.Unit, result.Geometry.Resolution, result.Geometry.Unit, output)
		}
		rendered++
	}

	fmt.Printf("\nDone: %d of %d slices rendered\n", rendered, *sweep)
}

// applyFlagOverrides copies non-empty flag values over the loaded
// configuration.
func applyFlagOverrides(cfg *config.Config, orientation, location, unit string, resolution float64, method, maskStyle string) {
	if orientation != "" {
		if v, err := parseVec3(orientation); err == nil {
			cfg.Slice.Orientation = []float64{v.X, v.Y, v.Z}
		} else {
			log.Fatalf("Invalid orientation: %v", err)
		}
	}
	if location != "" {
		if v, err := parseVec3(location); err == nil {
			cfg.Slice.Location = []float64{v.X, v.Y, v.Z}
		} else {
			log.Fatalf("Invalid location: %v", err)
		}
	}
	if unit != "" {
		cfg.Slice.Unit = unit
	}
	if resolution != 0 {
		cfg.Slice.Resolution = resolution
	}
	if method != "" {
		cfg.Slice.Method = method
	}
	if maskStyle != "" {
		cfg.Render.MaskStyle = maskStyle
	}
}

// sliceOptions assembles sampler options from the configuration and
// loads the optional mask and background volumes.
func sliceOptions(cfg *config.Config, maskFile, backgroundFile string, dims []int) (slicer.Options, error) {
	var opts slicer.Options

	if len(cfg.Slice.Orientation) == 3 {
		opts.Orientation = &models.Vec3{
			X: cfg.Slice.Orientation[0],
			Y: cfg.Slice.Orientation[1],
			Z: cfg.Slice.Orientation[2],
		}
	}
	if len(cfg.Slice.Location) == 3 {
		opts.Location = &models.Vec3{
			X: cfg.Slice.Location[0],
			Y: cfg.Slice.Location[1],
			Z: cfg.Slice.Location[2],
		}
	}
	opts.Resolution = cfg.Slice.Resolution

	method, err := interpolation.ParseMethod(cfg.Slice.Method)
	if err != nil {
		return opts, fmt.Errorf("invalid method: %w", err)
	}
	opts.Method = method

	if maskFile != "" {
		if opts.Mask, err = volio.LoadVolume(maskFile, dims[:3]); err != nil {
			return opts, fmt.Errorf("failed to load mask: %w", err)
		}
	}
	if backgroundFile != "" {
		if opts.Background, err = volio.LoadVolume(backgroundFile, dims); err != nil {
			return opts, fmt.Errorf("failed to load background: %w", err)
		}
	}
	return opts, nil
}

// sweptLocation offsets the configured location n steps along the plane
// normal.
func sweptLocation(opts slicer.Options, n int, step float64) *models.Vec3 {
	ori := models.Vec3{Z: 1}
	if opts.Orientation != nil {
		ori = opts.Orientation.Normalize()
	}
	if step == 0 {
		step = opts.Resolution
	}
	if step == 0 {
		step = 1
	}

	base := models.Vec3{}
	if opts.Location != nil {
		base = *opts.Location
	}
	loc := base.Add(ori.Scale(float64(n) * step))
	return &loc
}

// parseVec3 parses a comma-separated "x,y,z" triple.
func parseVec3(s string) (models.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return models.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.Vec3{}, fmt.Errorf("parsing component %q: %w", p, err)
		}
		v[i] = f
	}
	return models.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// numberedOutput inserts a slice index before the file extension.
func numberedOutput(name string, n int) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i] + "_" + strconv.Itoa(n) + name[i:]
	}
	return name + "_" + strconv.Itoa(n)
}
