package gohx

import (
	"github.com/gogo/protobuf/proto"
)

// CatalogState is the persisted header of a motif catalog db.
type CatalogState struct {
	MajorVers  uint32   `protobuf:"varint,1,opt,name=major_vers,proto3" json:"major_vers,omitempty"`
	MinorVers  uint32   `protobuf:"varint,2,opt,name=minor_vers,proto3" json:"minor_vers,omitempty"`
	NumMotifs  []uint64 `protobuf:"varint,3,rep,packed,name=num_motifs,proto3" json:"num_motifs,omitempty"`
	RunsMerged uint64   `protobuf:"varint,4,opt,name=runs_merged,proto3" json:"runs_merged,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

func (m *CatalogState) Marshal() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *CatalogState) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, m)
}

// MotifDef is the stored form of one motif class: its canonical signature,
// a display expression, and the accumulated occurrence count.
type MotifDef struct {
	Order     int32  `protobuf:"varint,1,opt,name=order,proto3" json:"order,omitempty"`
	Signature []byte `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Expr      string `protobuf:"bytes,3,opt,name=expr,proto3" json:"expr,omitempty"`
	Count     int64  `protobuf:"varint,4,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *MotifDef) Reset()         { *m = MotifDef{} }
func (m *MotifDef) String() string { return proto.CompactTextString(m) }
func (*MotifDef) ProtoMessage()    {}

func (m *MotifDef) Marshal() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *MotifDef) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, m)
}

func (m *MotifDef) Sig() Signature {
	return Signature(m.Signature)
}
