package frame

import "strconv"

func (a InFrame) String() string {
	return "InFrame(" + strconv.Itoa(a.Offset) + ")"
}

func (a InReg) String() string {
	return "InReg(" + a.Temp.String() + ")"
}
