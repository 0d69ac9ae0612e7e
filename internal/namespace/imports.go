package namespace

import (
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// StarImport brings every publicly visible symbol of the module at srcPath
// into the glob-import table of the module at dstPath, and merges the
// source module's trait implementations into the destination scope, so
// visible trait coverage travels with a glob import.
func (r *Root) StarImport(srcPath, dstPath []string, sp span.Span) []*diagnostics.Diagnostic {
	src, diag := r.module.LookupSubmodule(srcPath, sp)
	if diag != nil {
		return []*diagnostics.Diagnostic{diag}
	}
	dst, diag := r.module.LookupSubmodule(dstPath, sp)
	if diag != nil {
		return []*diagnostics.Diagnostic{diag}
	}

	for _, name := range src.items.symbolOrder {
		d := src.items.symbols[name]
		if !decl.IsPublic(d) {
			continue
		}
		dst.items.useGlobSynonyms[name] = append(dst.items.useGlobSynonyms[name], GlobBinding{Path: srcPath, Decl: d})
	}

	dst.items.implementedTraits.Extend(src.items.implementedTraits)
	return nil
}

// ItemImport brings one named item of the module at srcPath into the
// item-import table of the module at dstPath, under alias when given.
// Importing a private symbol is diagnosed but still recorded, so later
// lookups of the alias succeed and checking continues. Trait
// implementations registered for the item's own type travel with it.
func (r *Root) ItemImport(e *typesystem.TypeEngine, srcPath, dstPath []string, item, alias string, sp span.Span) []*diagnostics.Diagnostic {
	var diags []*diagnostics.Diagnostic

	src, diag := r.module.LookupSubmodule(srcPath, sp)
	if diag != nil {
		return []*diagnostics.Diagnostic{diag}
	}
	dst, diag := r.module.LookupSubmodule(dstPath, sp)
	if diag != nil {
		return []*diagnostics.Diagnostic{diag}
	}

	d, ok := src.items.symbols[item]
	if !ok {
		return []*diagnostics.Diagnostic{diagnostics.SymbolNotFound(item, sp)}
	}
	if !decl.IsPublic(d) {
		diags = append(diags, diagnostics.ImportPrivateSymbol(item, sp))
	}

	if typeID, isTyped := decl.TypeOf(d); isTyped {
		dst.items.implementedTraits.Extend(src.items.implementedTraits.filterByTypeItemImport(e, typeID))
	}

	binding := ItemBinding{Path: srcPath, Decl: d}
	name := item
	if alias != "" && alias != item {
		binding.OriginalName = item
		name = alias
	}
	dst.items.useItemSynonyms[name] = binding

	return diags
}
