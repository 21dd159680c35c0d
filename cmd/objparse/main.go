// objparse - Wavefront OBJ/MTL inspector and converter.
//
// Commands:
//
//	info <model.obj>              - vertex/triangle counts, bounds, material libraries
//	mtl <material.mtl>            - roughness, index of refraction, diffuse texture
//	convert <model.obj> <out>     - write .glb, .gltf or .stl
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
