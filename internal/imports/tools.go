// Package imports registers every tool package with the registry.
package imports

import (
	_ "github.com/sammcj/xamarin-devtools/internal/tools/androidtools"
	_ "github.com/sammcj/xamarin-devtools/internal/tools/componenttools"
	_ "github.com/sammcj/xamarin-devtools/internal/tools/iostools"
	_ "github.com/sammcj/xamarin-devtools/internal/tools/uitesttools"
)
