// Package gpuatlas is an in-memory atlas handler for glyphatlas.
//
// A [Manager] keeps every atlas as an RGB byte image on the CPU and tracks
// which atlases changed since they were last uploaded. A renderer creates
// one GPU texture per atlas from [Manager.TextureDescriptor], uploads
// [Atlas.RGBA] for every id in [Manager.DirtyAtlases], then calls
// [Manager.MarkClean]. Glyphs are drawn with the embedded MSDF text shader
// ([ShaderSource], [CompileShader]) using [Coords.Quad] for vertices.
//
//	atlases, _ := gpuatlas.New(gpuatlas.DefaultConfig())
//	cache := glyphatlas.New[gpuatlas.AtlasID, gpuatlas.Coords]()
//
//	p, ok, err := cache.Glyph(face, gid, atlases)
//	if ok {
//	    quad := p.Coords.Quad(penX, penY, fontSize)
//	    ...
//	}
package gpuatlas
