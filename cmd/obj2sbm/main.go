package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/udhos/gwob"

	"sb6-assets/internal/logging"
	"sb6-assets/internal/sbm"
)

func main() {
	indexed := flag.Bool("indexed", false, "Keep the OBJ index list as an index buffer (one sub-object)")
	comment := flag.String("comment", "", "Text stored in a comment chunk")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	logging.Setup(*verbose)

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: obj2sbm [-indexed] in.obj out.sbm")
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	obj, err := gwob.NewObjFromFile(in, &gwob.ObjParserOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse %s: %v\n", in, err)
		os.Exit(1)
	}

	b := convert(obj, *indexed)
	if *comment != "" {
		b.AddComment(*comment)
	}
	data, err := b.Bytes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("OK  %s -> %s  (%d groups, %d bytes)\n", in, out, len(obj.Groups), len(data))
}

// vertex returns the position (w = 1), normal and texture coordinate of
// OBJ vertex index. Missing components are zero.
func vertex(obj *gwob.Obj, index int) (pos [4]float32, norm [3]float32, uv [2]float32) {
	base := index * obj.StrideSize / 4
	p := base + obj.StrideOffsetPosition/4
	copy(pos[:3], obj.Coord[p:p+3])
	pos[3] = 1
	if obj.NormCoordFound {
		n := base + obj.StrideOffsetNormal/4
		copy(norm[:], obj.Coord[n:n+3])
	}
	if obj.TextCoordFound {
		t := base + obj.StrideOffsetTexture/4
		copy(uv[:], obj.Coord[t:t+2])
	}
	return pos, norm, uv
}

type streams struct {
	position, normal, uv []float32
}

func (s *streams) add(obj *gwob.Obj, index int) {
	p, n, t := vertex(obj, index)
	s.position = append(s.position, p[:]...)
	s.normal = append(s.normal, n[:]...)
	s.uv = append(s.uv, t[:]...)
}

func (s *streams) builder(obj *gwob.Obj) *sbm.Builder {
	b := new(sbm.Builder).AddFloats("position", 4, s.position)
	if obj.NormCoordFound {
		b.AddFloats("normal", 3, s.normal)
	}
	if obj.TextCoordFound {
		b.AddFloats("map1", 2, s.uv)
	}
	return b
}

// convert expands every OBJ group into its own contiguous vertex range so
// each group becomes one sub-object. With indexed set the shared vertices
// and the index list are kept instead.
func convert(obj *gwob.Obj, indexed bool) *sbm.Builder {
	var s streams
	if indexed {
		n := len(obj.Coord) * 4 / obj.StrideSize
		for i := 0; i < n; i++ {
			s.add(obj, i)
		}
		idx := make([]uint32, len(obj.Indices))
		for i, v := range obj.Indices {
			idx[i] = uint32(v)
		}
		return s.builder(obj).SetIndices(idx)
	}

	type span struct{ first, count uint32 }
	var spans []span
	for _, g := range obj.Groups {
		if g.IndexCount == 0 {
			continue
		}
		first := uint32(len(s.position) / 4)
		for i := g.IndexBegin; i < g.IndexBegin+g.IndexCount; i++ {
			s.add(obj, obj.Indices[i])
		}
		spans = append(spans, span{first, uint32(g.IndexCount)})
		logging.Logger().Debug("obj2sbm: group", "name", g.Name, "first", first, "count", g.IndexCount)
	}
	b := s.builder(obj)
	for _, sp := range spans {
		b.AddSubObject(sp.first, sp.count)
	}
	return b
}
