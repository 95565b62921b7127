package types

// SubModuleName is the error codespace and logger name of the port submodule.
const SubModuleName = "port"
