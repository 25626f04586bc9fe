package proto

import (
	"fmt"
)

// Command identifies the operation of a request.
type Command uint16

// Commands. The numeric values are used on the wire and must not change.
const (
	CmdTest Command = iota + 1
	CmdGetConfig
	CmdSetConfig
	CmdConnect
	CmdDisconnect
	CmdFindServers
	CmdGetEndpoints

	CmdAddSubscription
	CmdDeleteSubscription
	CmdAddMonitoredItem
	CmdDeleteMonitoredItem

	CmdAddVariableNode
	CmdAddVariableTypeNode
	CmdAddObjectNode
	CmdAddObjectTypeNode
	CmdAddViewNode
	CmdAddReferenceTypeNode
	CmdAddDataTypeNode
	CmdAddReference
	CmdDeleteReference
	CmdDeleteNode

	CmdWriteBrowseName
	CmdWriteDisplayName
	CmdWriteDescription
	CmdWriteWriteMask
	CmdWriteIsAbstract
	CmdWriteSymmetric
	CmdWriteInverseName
	CmdWriteContainsNoLoops
	CmdWriteDataType
	CmdWriteValueRank
	CmdWriteArrayDimensions
	CmdWriteAccessLevel
	CmdWriteMinimumSamplingInterval
	CmdWriteHistorizing
	CmdWriteExecutable
	CmdWriteEventNotifier
	CmdWriteValue
	CmdWriteValueArray
	CmdWriteBlankArray

	CmdReadNodeID
	CmdReadNodeClass
	CmdReadBrowseName
	CmdReadDisplayName
	CmdReadDescription
	CmdReadWriteMask
	CmdReadIsAbstract
	CmdReadSymmetric
	CmdReadInverseName
	CmdReadContainsNoLoops
	CmdReadDataType
	CmdReadValueRank
	CmdReadArrayDimensions
	CmdReadAccessLevel
	CmdReadMinimumSamplingInterval
	CmdReadHistorizing
	CmdReadExecutable
	CmdReadEventNotifier
	CmdReadValue
	CmdReadValueByIndex
	CmdReadValueByKind

	cmdEnd
)

var cmdStr = [...]string{
	"Invalid",
	"Test",
	"GetConfig",
	"SetConfig",
	"Connect",
	"Disconnect",
	"FindServers",
	"GetEndpoints",
	"AddSubscription",
	"DeleteSubscription",
	"AddMonitoredItem",
	"DeleteMonitoredItem",
	"AddVariableNode",
	"AddVariableTypeNode",
	"AddObjectNode",
	"AddObjectTypeNode",
	"AddViewNode",
	"AddReferenceTypeNode",
	"AddDataTypeNode",
	"AddReference",
	"DeleteReference",
	"DeleteNode",
	"WriteBrowseName",
	"WriteDisplayName",
	"WriteDescription",
	"WriteWriteMask",
	"WriteIsAbstract",
	"WriteSymmetric",
	"WriteInverseName",
	"WriteContainsNoLoops",
	"WriteDataType",
	"WriteValueRank",
	"WriteArrayDimensions",
	"WriteAccessLevel",
	"WriteMinimumSamplingInterval",
	"WriteHistorizing",
	"WriteExecutable",
	"WriteEventNotifier",
	"WriteValue",
	"WriteValueArray",
	"WriteBlankArray",
	"ReadNodeID",
	"ReadNodeClass",
	"ReadBrowseName",
	"ReadDisplayName",
	"ReadDescription",
	"ReadWriteMask",
	"ReadIsAbstract",
	"ReadSymmetric",
	"ReadInverseName",
	"ReadContainsNoLoops",
	"ReadDataType",
	"ReadValueRank",
	"ReadArrayDimensions",
	"ReadAccessLevel",
	"ReadMinimumSamplingInterval",
	"ReadHistorizing",
	"ReadExecutable",
	"ReadEventNotifier",
	"ReadValue",
	"ReadValueByIndex",
	"ReadValueByKind",
}

// Commands returns all valid commands.
func Commands() []Command {
	cs := make([]Command, 0, cmdEnd-1)
	for c := CmdTest; c < cmdEnd; c++ {
		cs = append(cs, c)
	}
	return cs
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	return c >= CmdTest && c < cmdEnd
}

func (c Command) String() string {
	if c.Valid() {
		return cmdStr[c]
	}
	return fmt.Sprintf("Command(%d)", uint16(c))
}

// ParseCommand looks up a command by name.
func ParseCommand(name string) (Command, error) {
	for idx, str := range cmdStr {
		if idx != 0 && str == name {
			return Command(idx), nil
		}
	}
	return 0, fmt.Errorf("Unknown command: %s", name)
}
