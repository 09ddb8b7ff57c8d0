package capvm

type OpCode uint32

const (
	OpLoadConst OpCode = iota + 8
	OpLoadSlot
	OpStoreSlot
	OpAddrOf
	OpGetField
	OpSetField
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpCall
	OpPop
	OpReturn
)

func (o OpCode) With(arg int) OpCode {
	return o | (OpCode(arg) << 8)
}

func (o OpCode) Op() OpCode {
	return o & 0xff
}

func (o OpCode) Arg() int {
	return int(o >> 8)
}
