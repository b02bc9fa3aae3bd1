// internal/platform/ui/ascii.go
package ui

// Banner principal mostrado por PTermPresenter.Start
const Banner = `
    ____              __
   / __ )__  ______ _/ /____  ______ _____ _____
  / __  / / / / __ ` + "`" + `/ //_/ / / / __ ` + "`" + `/ __ ` + "`" + `/ __ \
 / /_/ / /_/ / /_/ / ,< / /_/ / /_/ / /_/ / / / /
/_____/\__, /\__,_/_/|_|\__,_/\__, /\__,_/_/ /_/
      /____/                 /____/
`

// Tagline debajo del banner
const Tagline = "The All-Seeing Recon Pipeline"
