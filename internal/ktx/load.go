package ktx

import (
	"fmt"

	"sb6-assets/internal/gpu"
	"sb6-assets/internal/logging"
)

// Texture is a fully uploaded device texture.
type Texture struct {
	Handle gpu.Texture
	Target gpu.Target
	Format gpu.Format
	Width  int
	Height int
	Depth  int // depth of 3D textures, layer count otherwise
	Levels int // levels allocated on the device
}

// Load reads path and uploads it to dev. The texture is created on dev
// unless existing is non-zero, in which case that handle receives the
// storage. File bytes are released once the upload completes.
func Load(dev gpu.Device, path string, existing gpu.Texture, opts Options) (*Texture, error) {
	f, err := Read(path, opts)
	if err != nil {
		return nil, err
	}
	tex, err := f.Upload(dev, existing)
	if err != nil {
		return nil, fmt.Errorf("ktx: upload %s: %w", path, err)
	}
	return tex, nil
}

// Storage returns the device allocation for the file. A file that ships
// only its base level gets a full chain so the rest can be generated.
func (f *File) Storage() gpu.Storage {
	h := f.Header
	w, ht, d := LevelDims(h, 0)
	s := gpu.Storage{Target: f.Target, Format: f.Format, Levels: len(f.Levels), Width: w, Height: 1, Depth: 1}
	switch f.Target {
	case gpu.Target1D:
	case gpu.Target1DArray:
		s.Height = h.Layers()
	case gpu.Target2D:
		s.Height = ht
	case gpu.Target3D:
		s.Height, s.Depth = ht, d
	default:
		s.Height, s.Depth = ht, h.Layers()
	}
	if f.generatesMipmaps() {
		s.Levels = chainLength(h, f.Target)
	}
	return s
}

// chainLength is the level count of a full mip chain for the target.
func chainLength(h Header, target gpu.Target) int {
	w, ht, d := LevelDims(h, 0)
	switch target {
	case gpu.Target1D, gpu.Target1DArray:
		return FullChain(w)
	case gpu.Target3D:
		return FullChain(w, ht, d)
	}
	return FullChain(w, ht)
}

// generatesMipmaps reports whether the device must build levels 1..n.
// Block compressed data cannot be filtered on the device.
func (f *File) generatesMipmaps() bool {
	return len(f.Levels) == 1 && !f.Format.Compressed() && !f.SkipMipGeneration
}

// Upload creates or reuses a texture on dev and fills every level. A
// texture created here is deleted again if any later step fails; an
// existing handle is left to the caller.
func (f *File) Upload(dev gpu.Device, existing gpu.Texture) (*Texture, error) {
	if existing != 0 {
		return f.upload(dev, existing)
	}
	tex, err := dev.CreateTexture(f.Target)
	if err != nil {
		return nil, err
	}
	t, err := f.upload(dev, tex)
	if err != nil {
		if derr := dev.DeleteTexture(tex); derr != nil {
			logging.Logger().Warn("ktx: releasing texture after failed upload", "texture", tex, "error", derr)
		}
		return nil, err
	}
	return t, nil
}

func (f *File) upload(dev gpu.Device, tex gpu.Texture) (*Texture, error) {
	s := f.Storage()
	if err := dev.AllocateStorage(tex, s); err != nil {
		return nil, err
	}

	for i, lvl := range f.Levels {
		u := gpu.SubImage{
			Level:     i,
			Width:     lvl.Width,
			Height:    1,
			Depth:     1,
			Alignment: f.RowAlignment,
			Data:      lvl.Data,
		}
		switch f.Target {
		case gpu.Target1D:
		case gpu.Target1DArray:
			u.Height = lvl.Layers
		case gpu.Target2D:
			u.Height = lvl.Height
		case gpu.Target3D:
			u.Height, u.Depth = lvl.Height, lvl.Depth
		default:
			u.Height, u.Depth = lvl.Height, lvl.Layers
		}

		var err error
		if f.Format.Compressed() {
			u.Format = f.Format
			err = dev.UploadCompressedSubImage(tex, u)
		} else {
			u.Layout = f.Layout
			err = dev.UploadSubImage(tex, u)
		}
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
	}

	if f.generatesMipmaps() {
		logging.Logger().Debug("ktx: generating mipmaps", "levels", s.Levels)
		if err := dev.GenerateMipmap(tex); err != nil {
			return nil, err
		}
	} else if len(f.Levels) == 1 && f.Format.Compressed() {
		logging.Logger().Warn("ktx: single-level compressed texture, mipmaps not generated", "format", f.Format)
	}

	return &Texture{
		Handle: tex,
		Target: f.Target,
		Format: f.Format,
		Width:  s.Width,
		Height: s.Height,
		Depth:  s.Depth,
		Levels: s.Levels,
	}, nil
}
