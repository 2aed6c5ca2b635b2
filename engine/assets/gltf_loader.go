package assets

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/scene"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf or .glb file and merges every triangle primitive
// of every mesh into one geometry. Node transforms are not applied.
func LoadGLTF(path string) (*geometry.Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open gltf %q", path)
	}
	geo, err := ReadGLTF(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "read gltf %q", path)
	}
	return geo, nil
}

// ReadGLTF builds a position/normal/uv geometry from doc. Missing normals
// are computed from the triangles and missing UVs are zero.
func ReadGLTF(doc *gltf.Document) (*geometry.Geometry, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		uvs       [][2]float32
		indices   []uint32
	)

	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				continue
			}

			primPos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q positions", mesh.Name)
			}
			base := uint32(len(positions))

			var primIdx []uint32
			if prim.Indices != nil {
				primIdx, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, errors.Wrapf(err, "mesh %q indices", mesh.Name)
				}
			} else {
				primIdx = make([]uint32, len(primPos))
				for i := range primIdx {
					primIdx[i] = uint32(i)
				}
			}

			primNorm := make([][3]float32, len(primPos))
			if idx, ok := prim.Attributes["NORMAL"]; ok {
				if primNorm, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
					return nil, errors.Wrapf(err, "mesh %q normals", mesh.Name)
				}
			} else {
				computeNormals(primPos, primIdx, primNorm)
			}

			primUV := make([][2]float32, len(primPos))
			if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
				if primUV, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
					return nil, errors.Wrapf(err, "mesh %q uvs", mesh.Name)
				}
			}
			if len(primNorm) != len(primPos) || len(primUV) != len(primPos) {
				return nil, errors.Errorf("mesh %q has mismatched attribute counts", mesh.Name)
			}

			positions = append(positions, primPos...)
			normals = append(normals, primNorm...)
			uvs = append(uvs, primUV...)
			for _, i := range primIdx {
				indices = append(indices, base+i)
			}
		}
	}
	if len(positions) == 0 {
		return nil, errors.New("no triangle primitives")
	}

	vertex := make([]float32, 0, len(positions)*8)
	for i, p := range positions {
		n, uv := normals[i], uvs[i]
		vertex = append(vertex, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return geometry.New(vertex, indices, []geometry.Attribute{
		{Type: geometry.Position, ItemSize: 3},
		{Type: geometry.Normal, ItemSize: 3},
		{Type: geometry.UV, ItemSize: 2},
	}), nil
}

// computeNormals writes area weighted vertex normals into out.
func computeNormals(pos [][3]float32, idx []uint32, out [][3]float32) {
	acc := make([]mgl32.Vec3, len(pos))
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := idx[t], idx[t+1], idx[t+2]
		if int(a) >= len(pos) || int(b) >= len(pos) || int(c) >= len(pos) {
			continue
		}
		pa, pb, pc := mgl32.Vec3(pos[a]), mgl32.Vec3(pos[b]), mgl32.Vec3(pos[c])
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Len() > 0 {
			n = n.Normalize()
		}
		out[i] = n
	}
}

// MeshDecoder returns a decoder for the async loader that wraps each loaded
// geometry in a mesh using a fresh material from newMaterial.
func MeshDecoder(newMaterial func() materials.Material) func(ctx context.Context, path string) (*scene.Mesh, error) {
	return func(ctx context.Context, path string) (*scene.Mesh, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		geo, err := LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			geo.Dispose()
			return nil, err
		}
		mesh := scene.NewMesh(geo, newMaterial())
		mesh.Name = path
		return mesh, nil
	}
}
