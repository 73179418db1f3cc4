package main

import (
	"flag"
	"fmt"
	"os"

	"sb6-assets/internal/logging"
	"sb6-assets/internal/sbm"
)

func main() {
	verbose := flag.Bool("v", false, "Log the chunk walk")
	flag.Parse()
	logging.Setup(*verbose)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspectsbm [-v] file.sbm...")
		os.Exit(2)
	}

	failed := false
	for _, arg := range flag.Args() {
		f, err := sbm.Read(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		printFile(arg, f)
	}
	if failed {
		os.Exit(1)
	}
}

func printFile(path string, f *sbm.File) {
	fmt.Printf("\n=== %s (chunks=%d vertices=%d) ===\n", path, len(f.Chunks), f.Vertex.TotalVertices)

	fmt.Println("--- CHUNKS ---")
	for i, c := range f.Chunks {
		mark := ""
		if !c.Type.Known() {
			mark = "  (skipped)"
		}
		fmt.Printf("  [%d] %v offset=%d size=%d%s\n", i, c.Type, c.Offset, c.Size, mark)
	}

	fmt.Println("--- ATTRIBUTES ---")
	for i, a := range f.Attributes {
		typ := "?"
		if t, err := a.ComponentType(); err == nil {
			typ = t.String()
		}
		bound := ""
		if sbm.BoundAttributes[a.Name] {
			bound = fmt.Sprintf("  -> slot %d", i)
		}
		fmt.Printf("  [%d] %-10s %dx%s stride=%d offset=%d norm=%v int=%v%s\n",
			i, a.Name, a.Size, typ, a.Stride, a.DataOffset, a.Normalized(), a.Integer(), bound)
	}

	fmt.Printf("--- VERTEX DATA: %d bytes at %d ---\n", f.Vertex.DataSize, f.Vertex.DataOffset)
	if f.Index != nil {
		fmt.Printf("--- INDEX DATA: %d x %v at %d ---\n", f.Index.IndexCount, f.IndexType, f.Index.IndexDataOffset)
	}

	fmt.Println("--- SUB-OBJECTS ---")
	if !f.SubObjectList {
		fmt.Printf("  (implicit) first=0 count=%d\n", f.Vertex.TotalVertices)
	} else if len(f.SubObjects) == 0 {
		fmt.Println("  (empty list)")
	}
	for i, s := range f.SubObjects {
		fmt.Printf("  [%d] first=%d count=%d\n", i, s.First, s.Count)
	}

	for _, c := range f.Comments {
		fmt.Printf("--- COMMENT ---\n  %s\n", c)
	}
	for i, d := range f.Raw {
		fmt.Printf("--- DATA [%d] encoding=%d %d bytes at %d ---\n", i, d.Encoding, d.DataLength, d.DataOffset)
	}
}
