package render

import (
	"fmt"
	"strings"
)

const (
	emuPerPixel        = 9525
	defaultImageWidth  = 400
	defaultImageHeight = 300
)

const (
	documentPart     = "word/document.xml"
	relsPart         = "word/_rels/document.xml.rels"
	contentTypesPart = "[Content_Types].xml"
)

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
}

// imageInserter accumulates the archive-wide edits an embedded image needs:
// a media part, a relationship entry, and a content-type default.
type imageInserter struct {
	st      *stage
	rels    string
	types   string
	nextNum int
}

func newImageInserter(st *stage) (*imageInserter, error) {
	rels, err := st.readPart(relsPart)
	if err != nil {
		return nil, err
	}
	types, err := st.readPart(contentTypesPart)
	if err != nil {
		return nil, err
	}
	return &imageInserter{
		st:      st,
		rels:    rels,
		types:   types,
		nextNum: maxRelationshipID(rels) + 1,
	}, nil
}

// insert substitutes the image tag in doc with an inline drawing, staging the
// image bytes as a media part. Returns the updated document XML and whether
// the tag was found.
func (ins *imageInserter) insert(doc, tag string, img Image) (string, bool, error) {
	start, end := xmlAwareIndex(doc, tag)
	if start == -1 {
		return doc, false, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(img.Ext, "."))
	if _, ok := imageContentTypes[ext]; !ok {
		return "", false, fmt.Errorf("unsupported image extension %q", img.Ext)
	}

	num := ins.nextNum
	ins.nextNum++

	mediaName := fmt.Sprintf("media/image_r%d.%s", num, ext)
	if err := ins.st.writeBinaryPart("word/"+mediaName, img.Bytes); err != nil {
		return "", false, err
	}

	relID := fmt.Sprintf("rId%d", num)
	rel := fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`, relID, mediaName)
	ins.rels = strings.Replace(ins.rels, "</Relationships>", rel+"</Relationships>", 1)

	typeDefault := fmt.Sprintf(`<Default Extension="%s" ContentType="%s"/>`, ext, imageContentTypes[ext])
	if !strings.Contains(ins.types, fmt.Sprintf(`Extension="%s"`, ext)) {
		ins.types = strings.Replace(ins.types, "</Types>", typeDefault+"</Types>", 1)
	}

	width := img.Width
	height := img.Height
	if width <= 0 {
		width = defaultImageWidth
	}
	if height <= 0 {
		height = defaultImageHeight
	}

	drawing := inlineDrawing(relID, num, width*emuPerPixel, height*emuPerPixel)
	// The tag sits inside a <w:t> run; close it, emit the drawing run, and
	// reopen a text run for whatever follows the tag.
	replacement := `</w:t></w:r><w:r>` + drawing + `</w:r><w:r><w:t xml:space="preserve">`
	doc = doc[:start] + replacement + doc[end:]

	return doc, true, nil
}

// flush writes the accumulated relationship and content-type edits back into
// the staged archive.
func (ins *imageInserter) flush() error {
	if err := ins.st.writePart(relsPart, ins.rels); err != nil {
		return err
	}
	return ins.st.writePart(contentTypesPart, ins.types)
}

func inlineDrawing(relID string, num, cx, cy int) string {
	return fmt.Sprintf(`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><wp:extent cx="%d" cy="%d"/><wp:effectExtent l="0" t="0" r="0" b="0"/><wp:docPr id="%d" name="Picture %d"/><wp:cNvGraphicFramePr/><a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:nvPicPr><pic:cNvPr id="%d" name="Picture %d"/><pic:cNvPicPr/></pic:nvPicPr><pic:blipFill><a:blip r:embed="%s" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill><pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`,
		cx, cy, num, num, num, num, relID, cx, cy)
}

// maxRelationshipID scans rIdN attributes so new relationships never collide
// with existing ones.
func maxRelationshipID(rels string) int {
	max := 0
	rest := rels
	for {
		idx := strings.Index(rest, `Id="rId`)
		if idx == -1 {
			break
		}
		rest = rest[idx+len(`Id="rId`):]
		n := 0
		for i := 0; i < len(rest) && rest[i] >= '0' && rest[i] <= '9'; i++ {
			n = n*10 + int(rest[i]-'0')
		}
		if n > max {
			max = n
		}
	}
	return max
}
