package model

import "fmt"

// Role is the semantic role of a node. Roles cross the boundary as their
// index in roleTable.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleTextRun
	RoleCell
	RoleLabel
	RoleImage
	RoleLink
	RoleRow
	RoleListItem
	RoleListMarker
	RoleTreeItem
	RoleListBoxOption
	RoleMenuItem
	RoleMenuListOption
	RoleParagraph
	RoleGenericContainer
	RoleCheckBox
	RoleRadioButton
	RoleTextInput
	RoleButton
	RoleDefaultButton
	RolePane
	RoleRowHeader
	RoleColumnHeader
	RoleRowGroup
	RoleList
	RoleTable
	RoleLayoutTableCell
	RoleLayoutTableRow
	RoleLayoutTable
	RoleSwitch
	RoleMenu
	RoleMultilineTextInput
	RoleSearchInput
	RoleDateInput
	RoleDateTimeInput
	RoleWeekInput
	RoleMonthInput
	RoleTimeInput
	RoleEmailInput
	RoleNumberInput
	RolePasswordInput
	RolePhoneNumberInput
	RoleUrlInput
	RoleAbbr
	RoleAlert
	RoleAlertDialog
	RoleApplication
	RoleArticle
	RoleAudio
	RoleBanner
	RoleBlockquote
	RoleCanvas
	RoleCaption
	RoleCaret
	RoleCode
	RoleColorWell
	RoleComboBox
	RoleEditableComboBox
	RoleComplementary
	RoleComment
	RoleContentDeletion
	RoleContentInsertion
	RoleContentInfo
	RoleDefinition
	RoleDescriptionList
	RoleDescriptionListDetail
	RoleDescriptionListTerm
	RoleDetails
	RoleDialog
	RoleDirectory
	RoleDisclosureTriangle
	RoleDocument
	RoleEmbeddedObject
	RoleEmphasis
	RoleFeed
	RoleFigureCaption
	RoleFigure
	RoleFooter
	RoleFooterAsNonLandmark
	RoleForm
	RoleGrid
	RoleGroup
	RoleHeader
	RoleHeaderAsNonLandmark
	RoleHeading
	RoleIframe
	RoleIframePresentational
	RoleImeCandidate
	RoleKeyboard
	RoleLegend
	RoleLineBreak
	RoleListBox
	RoleLog
	RoleMain
	RoleMark
	RoleMarquee
	RoleMath
	RoleMenuBar
	RoleMenuItemCheckBox
	RoleMenuItemRadio
	RoleMenuListPopup
	RoleMeter
	RoleNavigation
	RoleNote
	RolePluginObject
	RolePortal
	RolePre
	RoleProgressIndicator
	RoleRadioGroup
	RoleRegion
	RoleRootWebArea
	RoleRuby
	RoleRubyAnnotation
	RoleScrollBar
	RoleScrollView
	RoleSearch
	RoleSection
	RoleSlider
	RoleSpinButton
	RoleSplitter
	RoleStatus
	RoleStrong
	RoleSuggestion
	RoleSvgRoot
	RoleTab
	RoleTabList
	RoleTabPanel
	RoleTerm
	RoleTime
	RoleTimer
	RoleTitleBar
	RoleToolbar
	RoleTooltip
	RoleTree
	RoleTreeGrid
	RoleVideo
	RoleWebView
	RoleWindow
	RoleTerminal
)

// roleInfo pairs a role's wire name with the compact code used in output.
type roleInfo struct {
	name  string
	short string
}

var roleTable = [...]roleInfo{
	RoleUnknown:               {"unknown", "other"},
	RoleTextRun:               {"textRun", "txt"},
	RoleCell:                  {"cell", "cell"},
	RoleLabel:                 {"label", "txt"},
	RoleImage:                 {"image", "img"},
	RoleLink:                  {"link", "lnk"},
	RoleRow:                   {"row", "row"},
	RoleListItem:              {"listItem", "item"},
	RoleListMarker:            {"listMarker", "other"},
	RoleTreeItem:              {"treeItem", "item"},
	RoleListBoxOption:         {"listBoxOption", "item"},
	RoleMenuItem:              {"menuItem", "menuitem"},
	RoleMenuListOption:        {"menuListOption", "menuitem"},
	RoleParagraph:             {"paragraph", "txt"},
	RoleGenericContainer:      {"genericContainer", "group"},
	RoleCheckBox:              {"checkBox", "chk"},
	RoleRadioButton:           {"radioButton", "radio"},
	RoleTextInput:             {"textInput", "input"},
	RoleButton:                {"button", "btn"},
	RoleDefaultButton:         {"defaultButton", "btn"},
	RolePane:                  {"pane", "group"},
	RoleRowHeader:             {"rowHeader", "cell"},
	RoleColumnHeader:          {"columnHeader", "cell"},
	RoleRowGroup:              {"rowGroup", "group"},
	RoleList:                  {"list", "list"},
	RoleTable:                 {"table", "list"},
	RoleLayoutTableCell:       {"layoutTableCell", "cell"},
	RoleLayoutTableRow:        {"layoutTableRow", "row"},
	RoleLayoutTable:           {"layoutTable", "list"},
	RoleSwitch:                {"switch", "toggle"},
	RoleMenu:                  {"menu", "menu"},
	RoleMultilineTextInput:    {"multilineTextInput", "input"},
	RoleSearchInput:           {"searchInput", "input"},
	RoleDateInput:             {"dateInput", "input"},
	RoleDateTimeInput:         {"dateTimeInput", "input"},
	RoleWeekInput:             {"weekInput", "input"},
	RoleMonthInput:            {"monthInput", "input"},
	RoleTimeInput:             {"timeInput", "input"},
	RoleEmailInput:            {"emailInput", "input"},
	RoleNumberInput:           {"numberInput", "input"},
	RolePasswordInput:         {"passwordInput", "input"},
	RolePhoneNumberInput:      {"phoneNumberInput", "input"},
	RoleUrlInput:              {"urlInput", "input"},
	RoleAbbr:                  {"abbr", "txt"},
	RoleAlert:                 {"alert", "alert"},
	RoleAlertDialog:           {"alertDialog", "dialog"},
	RoleApplication:           {"application", "app"},
	RoleArticle:               {"article", "group"},
	RoleAudio:                 {"audio", "media"},
	RoleBanner:                {"banner", "group"},
	RoleBlockquote:            {"blockquote", "txt"},
	RoleCanvas:                {"canvas", "img"},
	RoleCaption:               {"caption", "txt"},
	RoleCaret:                 {"caret", "other"},
	RoleCode:                  {"code", "txt"},
	RoleColorWell:             {"colorWell", "input"},
	RoleComboBox:              {"comboBox", "combo"},
	RoleEditableComboBox:      {"editableComboBox", "combo"},
	RoleComplementary:         {"complementary", "group"},
	RoleComment:               {"comment", "txt"},
	RoleContentDeletion:       {"contentDeletion", "txt"},
	RoleContentInsertion:      {"contentInsertion", "txt"},
	RoleContentInfo:           {"contentInfo", "group"},
	RoleDefinition:            {"definition", "txt"},
	RoleDescriptionList:       {"descriptionList", "list"},
	RoleDescriptionListDetail: {"descriptionListDetail", "txt"},
	RoleDescriptionListTerm:   {"descriptionListTerm", "txt"},
	RoleDetails:               {"details", "group"},
	RoleDialog:                {"dialog", "dialog"},
	RoleDirectory:             {"directory", "list"},
	RoleDisclosureTriangle:    {"disclosureTriangle", "btn"},
	RoleDocument:              {"document", "web"},
	RoleEmbeddedObject:        {"embeddedObject", "other"},
	RoleEmphasis:              {"emphasis", "txt"},
	RoleFeed:                  {"feed", "list"},
	RoleFigureCaption:         {"figureCaption", "txt"},
	RoleFigure:                {"figure", "img"},
	RoleFooter:                {"footer", "group"},
	RoleFooterAsNonLandmark:   {"footerAsNonLandmark", "group"},
	RoleForm:                  {"form", "group"},
	RoleGrid:                  {"grid", "list"},
	RoleGroup:                 {"group", "group"},
	RoleHeader:                {"header", "group"},
	RoleHeaderAsNonLandmark:   {"headerAsNonLandmark", "group"},
	RoleHeading:               {"heading", "txt"},
	RoleIframe:                {"iframe", "web"},
	RoleIframePresentational:  {"iframePresentational", "web"},
	RoleImeCandidate:          {"imeCandidate", "other"},
	RoleKeyboard:              {"keyboard", "other"},
	RoleLegend:                {"legend", "txt"},
	RoleLineBreak:             {"lineBreak", "txt"},
	RoleListBox:               {"listBox", "list"},
	RoleLog:                   {"log", "group"},
	RoleMain:                  {"main", "group"},
	RoleMark:                  {"mark", "txt"},
	RoleMarquee:               {"marquee", "txt"},
	RoleMath:                  {"math", "txt"},
	RoleMenuBar:               {"menuBar", "menu"},
	RoleMenuItemCheckBox:      {"menuItemCheckBox", "menuitem"},
	RoleMenuItemRadio:         {"menuItemRadio", "menuitem"},
	RoleMenuListPopup:         {"menuListPopup", "menu"},
	RoleMeter:                 {"meter", "progress"},
	RoleNavigation:            {"navigation", "group"},
	RoleNote:                  {"note", "txt"},
	RolePluginObject:          {"pluginObject", "other"},
	RolePortal:                {"portal", "other"},
	RolePre:                   {"pre", "txt"},
	RoleProgressIndicator:     {"progressIndicator", "progress"},
	RoleRadioGroup:            {"radioGroup", "group"},
	RoleRegion:                {"region", "group"},
	RoleRootWebArea:           {"rootWebArea", "web"},
	RoleRuby:                  {"ruby", "txt"},
	RoleRubyAnnotation:        {"rubyAnnotation", "txt"},
	RoleScrollBar:             {"scrollBar", "scrollbar"},
	RoleScrollView:            {"scrollView", "scroll"},
	RoleSearch:                {"search", "group"},
	RoleSection:               {"section", "group"},
	RoleSlider:                {"slider", "slider"},
	RoleSpinButton:            {"spinButton", "input"},
	RoleSplitter:              {"splitter", "other"},
	RoleStatus:                {"status", "txt"},
	RoleStrong:                {"strong", "txt"},
	RoleSuggestion:            {"suggestion", "txt"},
	RoleSvgRoot:               {"svgRoot", "img"},
	RoleTab:                   {"tab", "tab"},
	RoleTabList:               {"tabList", "tab"},
	RoleTabPanel:              {"tabPanel", "group"},
	RoleTerm:                  {"term", "txt"},
	RoleTime:                  {"time", "txt"},
	RoleTimer:                 {"timer", "txt"},
	RoleTitleBar:              {"titleBar", "toolbar"},
	RoleToolbar:               {"toolbar", "toolbar"},
	RoleTooltip:               {"tooltip", "txt"},
	RoleTree:                  {"tree", "list"},
	RoleTreeGrid:              {"treeGrid", "list"},
	RoleVideo:                 {"video", "media"},
	RoleWebView:               {"webView", "web"},
	RoleWindow:                {"window", "window"},
	RoleTerminal:              {"terminal", "input"},
}

// RoleCount is the number of valid role codes.
const RoleCount = len(roleTable)

// RoleFromCode decodes a role code. Codes outside the table are rejected.
func RoleFromCode(code int) (Role, error) {
	if code < 0 || code >= RoleCount {
		return 0, &CodeError{Kind: "role", Code: code, Max: RoleCount - 1}
	}
	return Role(code), nil
}

// ParseRole looks a role up by its wire name (e.g. "button").
func ParseRole(name string) (Role, error) {
	for i, info := range roleTable {
		if info.name == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

func (r Role) String() string {
	if int(r) < RoleCount {
		return roleTable[r].name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Short returns the compact code used in element output, e.g. "btn".
func (r Role) Short() string {
	if int(r) < RoleCount {
		return roleTable[r].short
	}
	return "other"
}

// MetaRoles maps meta-role names to the compact codes they expand to.
var MetaRoles = map[string][]string{
	"interactive": {"btn", "input", "chk", "toggle", "radio", "combo", "slider", "lnk", "menuitem", "tab"},
}

// ExpandRoles expands any meta-roles in the given list to their compact codes.
// Non-meta roles are passed through unchanged. Duplicates are removed.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var expanded []string
	for _, r := range roles {
		if concrete, ok := MetaRoles[r]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[r] {
			seen[r] = true
			expanded = append(expanded, r)
		}
	}
	return expanded
}
